package cmd

import (
	"errors"
	"fmt"
	"testing"

	gitx "github.com/neurotica01/crackify/internal/git"
	"github.com/neurotica01/crackify/internal/pipeline"
)

func TestExitStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "Configuration", err: &pipeline.ConfigurationError{Reason: "x"}, want: exitConfig},
		{name: "Acquisition", err: &pipeline.AcquisitionError{Source: "s", Err: errors.New("x")}, want: exitAcquisition},
		{name: "Rewrite", err: &pipeline.RewriteError{Err: errors.New("x")}, want: exitRewrite},
		{name: "Publish", err: &pipeline.PublishError{Kind: pipeline.PublishAuth, Destination: "d", Err: errors.New("x")}, want: exitPublish},
		{name: "WrappedPublish", err: fmt.Errorf("run: %w", &pipeline.PublishError{Err: errors.New("x")}), want: exitPublish},
		{name: "Generic", err: errors.New("usage"), want: exitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitStatus(tt.err); got != tt.want {
				t.Fatalf("exitStatus(%v) = %d, expected %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestResolveIdentity(t *testing.T) {
	global := gitx.Identity{Name: "Global", Email: "global@example.com"}
	globalFn := func() (gitx.Identity, error) { return global, nil }

	tests := []struct {
		name string
		flag gitx.Identity
		file gitx.Identity
		want gitx.Identity
	}{
		{
			name: "FlagWins",
			flag: gitx.Identity{Name: "Flag", Email: "flag@example.com"},
			file: gitx.Identity{Name: "File", Email: "file@example.com"},
			want: gitx.Identity{Name: "Flag", Email: "flag@example.com"},
		},
		{
			name: "FileFillsMissingFlagFields",
			flag: gitx.Identity{Name: "Flag"},
			file: gitx.Identity{Name: "File", Email: "file@example.com"},
			want: gitx.Identity{Name: "Flag", Email: "file@example.com"},
		},
		{
			name: "GlobalFillsTheRest",
			flag: gitx.Identity{},
			file: gitx.Identity{Name: "File"},
			want: gitx.Identity{Name: "File", Email: "global@example.com"},
		},
		{
			name: "AllFromGlobal",
			want: global,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveIdentity(tt.flag, tt.file, globalFn); got != tt.want {
				t.Fatalf("resolveIdentity = %+v, expected %+v", got, tt.want)
			}
		})
	}

	t.Run("GlobalNotConsultedWhenComplete", func(t *testing.T) {
		called := false
		fn := func() (gitx.Identity, error) {
			called = true
			return gitx.Identity{}, nil
		}
		flag := gitx.Identity{Name: "Flag", Email: "flag@example.com"}
		if got := resolveIdentity(flag, gitx.Identity{}, fn); got != flag {
			t.Fatalf("resolveIdentity = %+v, expected %+v", got, flag)
		}
		if called {
			t.Fatal("global lookup ran although the identity was already complete")
		}
	})

	t.Run("GlobalErrorIgnored", func(t *testing.T) {
		fn := func() (gitx.Identity, error) {
			return gitx.Identity{}, errors.New("no config")
		}
		got := resolveIdentity(gitx.Identity{Name: "Flag"}, gitx.Identity{}, fn)
		if got.Name != "Flag" || got.Email != "" {
			t.Fatalf("resolveIdentity = %+v, expected partial flag identity", got)
		}
	})
}
