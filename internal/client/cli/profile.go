package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/dmitrijs2005/veildiary/internal/common"
	"github.com/dmitrijs2005/veildiary/internal/netx"
	"github.com/spf13/cobra"
)

const maxAvatarBytes = 5 << 20

func newUsernameCmd(a *App) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "username <name>",
		Short: "Pick your public username, or check if one is free",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			if check {
				exists, err := a.client.UsernameExists(ctx, args[0])
				if err != nil {
					return err
				}
				if exists {
					fmt.Fprintf(a.out, "%s is taken\n", args[0])
				} else {
					fmt.Fprintf(a.out, "%s is available\n", args[0])
				}
				return nil
			}

			if err := a.requireLogin(); err != nil {
				return err
			}
			p, err := a.client.SetUsername(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "You are now @%s\n", p.Username)
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "only check availability")
	return cmd
}

func newProfileCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile [username]",
		Short: "Show your profile or someone else's",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			if len(args) == 1 {
				p, err := a.client.Profile(ctx, args[0])
				if err != nil {
					return err
				}
				printProfile(a.out, p)
				return nil
			}

			if err := a.requireLogin(); err != nil {
				return err
			}
			p, err := a.client.MyProfile(ctx)
			if err != nil {
				return err
			}
			printProfile(a.out, p)
			return nil
		},
	}
	cmd.AddCommand(newProfileEditCmd(a), newProfileAvatarCmd(a))
	return cmd
}

func newProfileEditCmd(a *App) *cobra.Command {
	var bio, picture string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Change your bio or picture URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("bio") && !cmd.Flags().Changed("picture-url") {
				return common.NewValidationError("", "nothing to change, pass --bio or --picture-url")
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			current, err := a.client.MyProfile(ctx)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("bio") {
				bio = current.Bio
			}
			if !cmd.Flags().Changed("picture-url") {
				picture = current.ProfilePictureURL
			}

			p, err := a.client.UpdateProfile(ctx, bio, picture)
			if err != nil {
				return err
			}
			printProfile(a.out, p)
			return nil
		},
	}
	cmd.Flags().StringVar(&bio, "bio", "", "short text about you")
	cmd.Flags().StringVar(&picture, "picture-url", "", "link to your profile picture")
	return cmd
}

func newProfileAvatarCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "avatar <image-file>",
		Short: "Upload a profile picture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if len(data) > maxAvatarBytes {
				return common.NewValidationError("avatar", fmt.Sprintf("file is larger than %d MiB", maxAvatarBytes>>20))
			}

			ctx, cancel := a.requestContext(cmd.Context())
			defer cancel()

			current, err := a.client.MyProfile(ctx)
			if err != nil {
				return err
			}
			_, url, err := a.client.AvatarUploadURL(ctx)
			if err != nil {
				return err
			}
			if err := netx.UploadToPresignedURL(ctx, a.httpClient, url, http.DetectContentType(data), data); err != nil {
				return err
			}
			objectURL, err := netx.ObjectURL(url)
			if err != nil {
				return err
			}

			p, err := a.client.UpdateProfile(ctx, current.Bio, objectURL)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Picture updated: %s\n", p.ProfilePictureURL)
			return nil
		},
	}
}
