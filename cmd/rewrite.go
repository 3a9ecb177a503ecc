package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/neurotica01/crackify/config"
	gitx "github.com/neurotica01/crackify/internal/git"
	"github.com/neurotica01/crackify/internal/pipeline"
	"github.com/urfave/cli/v2"
)

// RewriteCmd creates the rewrite command.
func RewriteCmd() *cli.Command {
	return &cli.Command{
		Name:      "rewrite",
		Usage:     "Clone a repository and replay its history with new author metadata",
		ArgsUsage: "<source-repo> <output-dir>",
		Flags:     rewriteFlags(),
		Action:    rewriteAction,
	}
}

func rewriteFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "name",
			Aliases: []string{"n"},
			Usage:   "Replacement author name (default: config file, then git config user.name)",
		},
		&cli.StringFlag{
			Name:    "email",
			Aliases: []string{"e"},
			Usage:   "Replacement author email (default: config file, then git config user.email)",
		},
		&cli.StringFlag{
			Name:  "push",
			Usage: "Destination remote URL to publish the rewritten history to",
		},
		&cli.StringFlag{
			Name:  "token",
			Usage: "Access token for pushing and creating the destination (default: $CRACKIFY_TOKEN, $GITHUB_TOKEN)",
		},
		&cli.IntFlag{
			Name:  "window-days",
			Usage: "Length of the trailing window the new timestamps are spread over",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
	}
}

func rewriteAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("source repository and output directory are required (see 'crackify rewrite --help')")
	}

	opts, err := buildOptions(c)
	if err != nil {
		return err
	}

	color.Green("Rewriting %s into %s as %s", opts.Source, opts.OutputDir, opts.Identity)

	sum, err := pipeline.New().Run(c.Context, opts)
	if err != nil {
		if sum != nil && sum.Commits > 0 {
			// Publish failed after the rewrite; the local copy is good.
			fmt.Fprintf(os.Stderr, "Rewrote %d commits to %s before the failure; local copy kept.\n",
				sum.Commits, opts.OutputDir)
		}
		return err
	}

	printSummary(opts, sum)
	return nil
}

// buildOptions resolves configuration once, up front: flags override the
// config file, which overrides the global git configuration.
func buildOptions(c *cli.Context) (pipeline.Options, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("failed to load config: %w", err)
	}

	identity := resolveIdentity(
		gitx.Identity{Name: c.String("name"), Email: c.String("email")},
		gitx.Identity{Name: cfg.Identity.Name, Email: cfg.Identity.Email},
		globalIdentity,
	)

	policy := cfg.Timestamps.Policy()
	if c.IsSet("window-days") {
		policy.WindowDays = c.Int("window-days")
	}

	pushURL := c.String("push")
	if pushURL == "" {
		pushURL = cfg.Push.Remote
	}
	token := c.String("token")
	if token == "" {
		token = cfg.Push.Token()
	}

	return pipeline.Options{
		Source:    c.Args().Get(0),
		OutputDir: c.Args().Get(1),
		Identity:  identity,
		Policy:    policy,
		PushURL:   pushURL,
		Token:     token,
	}, nil
}

// resolveIdentity merges identity sources field by field, highest
// precedence first. The global lookup only runs when a field is still
// missing after flags and config.
func resolveIdentity(flag, file gitx.Identity, global func() (gitx.Identity, error)) gitx.Identity {
	id := flag
	if id.Name == "" {
		id.Name = file.Name
	}
	if id.Email == "" {
		id.Email = file.Email
	}
	if id.IsComplete() {
		return id
	}

	g, err := global()
	if err != nil {
		return id
	}
	if id.Name == "" {
		id.Name = g.Name
	}
	if id.Email == "" {
		id.Email = g.Email
	}
	return id
}

func globalIdentity() (gitx.Identity, error) {
	return gitx.GlobalIdentity()
}

func printSummary(opts pipeline.Options, sum *pipeline.Summary) {
	if sum.Commits == 0 {
		color.Yellow("Source has no commits; rewritten repository at %s is empty", opts.OutputDir)
	} else {
		color.Green("Rewrote %d commits on %s (tip %.10s) into %s", sum.Commits, sum.Branch, sum.Tip, opts.OutputDir)
	}
	if sum.Pushed {
		color.Green("Pushed to %s", sum.Destination)
	}
}
