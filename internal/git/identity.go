package git

import gitcfg "github.com/go-git/go-git/v5/config"

// GlobalIdentity reads user.name and user.email from the global git
// configuration. It is called once at startup; the pipeline never consults
// ambient configuration mid-run. A missing config file is not an error, the
// returned identity is simply incomplete.
func GlobalIdentity() (Identity, error) {
	cfg, err := gitcfg.LoadConfig(gitcfg.GlobalScope)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Name: cfg.User.Name, Email: cfg.User.Email}, nil
}
