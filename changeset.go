// Package changeset writes changeset files from conventional commits.
//
// Related packages: config, changeset, commit, format, runner, model, vcs,
// vcs/gitcli
package changeset

import (
	"context"

	"github.com/jeffrom/changeset/changeset"
	"github.com/jeffrom/changeset/config"
	"github.com/jeffrom/changeset/model"
)

// Config holds most of the configuration variables for changeset. This struct
// is intended for command-line use, so not all of its attributes are
// applicable to every operation.
//
// See "go doc github.com/jeffrom/changeset/config Config" for more information.
type Config = config.Config

// Write writes rec to dir, formatted from the process working directory, and
// returns its id.
func Write(ctx context.Context, cfg Config, rec *model.ChangeRecord, dir string) (string, error) {
	return changeset.NewWriter(cfg, "").Write(ctx, rec, dir)
}
