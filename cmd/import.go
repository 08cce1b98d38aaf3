package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"pulse-digest/internal/apperr"
	"pulse-digest/internal/model"
	"pulse-digest/internal/redisclient"
	"pulse-digest/internal/storage"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// importFile is the JSON shape accepted by the import command. Tags may be
// bare strings or full objects; bare names are normalized into single-
// observation Tag records here, never inside the engine.
type importFile struct {
	Posts []model.SocialPost `json:"posts"`
	Tags  []json.RawMessage  `json:"tags"`
}

// importCmd loads social posts and tag observations into the candidate pool.
var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import social posts and tags into the candidate pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		var f importFile
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()
		store := storage.NewRedisStore(rdb)
		ctx := cmd.Context()

		imported, skipped := 0, 0
		for _, p := range f.Posts {
			if err := validateImportPost(&p); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping post %s: %v\n", p.ID, err)
				skipped++
				continue
			}
			if err := store.AddPost(ctx, p); err != nil {
				return fmt.Errorf("store post %s: %w", p.ID, err)
			}
			imported++
		}

		for _, raw := range f.Tags {
			tag, err := decodeTag(raw)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping tag: %v\n", err)
				skipped++
				continue
			}
			if err := store.ObserveTag(ctx, tag); err != nil {
				return fmt.Errorf("store tag %s: %w", tag.Name, err)
			}
			imported++
		}

		fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d\n", imported, skipped)
		return nil
	},
}

func validateImportPost(p *model.SocialPost) error {
	if strings.TrimSpace(p.Content) == "" {
		return apperr.NewValidation("empty content")
	}
	if p.LikeCount < 0 || p.RepostCount < 0 || p.ReplyCount < 0 || p.QuoteCount < 0 || p.FollowerCount < 0 {
		return apperr.NewValidation("negative engagement counts")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// decodeTag accepts either a bare name string or a full Tag object.
func decodeTag(raw json.RawMessage) (model.Tag, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		if strings.TrimSpace(name) == "" {
			return model.Tag{}, apperr.NewValidation("empty tag name")
		}
		return model.TagFromName(name), nil
	}
	var tag model.Tag
	if err := json.Unmarshal(raw, &tag); err != nil {
		return model.Tag{}, apperr.NewValidationWrap("tag is neither a name nor an object", err)
	}
	if strings.TrimSpace(tag.Name) == "" {
		return model.Tag{}, apperr.NewValidation("empty tag name")
	}
	if tag.PostCount < 0 || tag.TotalLikes < 0 || tag.TotalReposts < 0 || tag.TotalReplies < 0 {
		return model.Tag{}, apperr.NewValidation("tag " + tag.Name + " has negative counts")
	}
	tag.Name = strings.ToLower(strings.TrimSpace(tag.Name))
	return tag, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
