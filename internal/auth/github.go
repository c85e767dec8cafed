package auth

const (
	// EnvStarcraftToken takes precedence over EnvGitHubToken
	EnvStarcraftToken = "STARCRAFT_GITHUB_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
)

const gitHubHelp = `Provide a token in one of these ways:
  1. --token flag
  2. STARCRAFT_GITHUB_TOKEN environment variable
  3. GITHUB_TOKEN environment variable

A token without any scope is enough for public repositories.`

// GitHubToken resolves the GitHub token: the flag value first, then
// STARCRAFT_GITHUB_TOKEN, then GITHUB_TOKEN.
func GitHubToken(flagValue string) (*Result, error) {
	return NewResolver("GitHub").
		WithFlagValue(flagValue).
		WithEnvs(EnvStarcraftToken, EnvGitHubToken).
		WithHelpMessage(gitHubHelp).
		Resolve()
}
