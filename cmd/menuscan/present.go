package main

import (
	"encoding/json"
	"fmt"

	"github.com/menuscan/backend/internal/domain"
	"github.com/menuscan/backend/internal/usecase"
	"github.com/spf13/cobra"
)

func presentCmd(rt *cliRuntime) *cobra.Command {
	var profile domain.BusinessProfile

	cmd := &cobra.Command{
		Use:   "present",
		Short: "Generate presentation copy for a business page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service := usecase.NewPresentationService(rt.client, rt.logger)

			presentation, err := service.Generate(cmd.Context(), profile)
			if err != nil {
				return err
			}

			b, err := json.MarshalIndent(presentation, "", "  ")
			if err != nil {
				return fmt.Errorf("encode presentation: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}

	cmd.Flags().StringVar(&profile.Name, "name", "", "business name (required)")
	cmd.Flags().StringVar(&profile.Type, "type", "", "kind of business, e.g. cafe or restaurant")
	cmd.Flags().StringVar(&profile.City, "city", "", "city the business is in")
	cmd.Flags().StringVar(&profile.Description, "description", "", "short free-form description")
	cmd.Flags().StringSliceVar(&profile.Specialties, "specialty", nil, "signature product, repeatable")
	cmd.Flags().StringVar(&profile.Language, "language", "", "language of the generated copy")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
