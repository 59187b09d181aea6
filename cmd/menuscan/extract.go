package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/menuscan/backend/internal/infrastructure/imaging"
	"github.com/menuscan/backend/internal/usecase"
	"github.com/spf13/cobra"
)

func extractCmd(rt *cliRuntime) *cobra.Command {
	var out string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract the products of a menu image as export JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			service := usecase.NewExtractionService(rt.client, rt.logger, usecase.ExtractionServiceConfig{
				Locale: rt.cfg.Extraction.Locale,
			})

			progress := usecase.NewProgressStream()
			var wg sync.WaitGroup
			var bar *progressBar
			if !quiet {
				bar = newProgressBar(cmd.ErrOrStderr(), "Extracting menu")
				events := progress.Subscribe()
				wg.Add(1)
				go func() {
					defer wg.Done()
					for event := range events {
						bar.Set(event.Percent, string(event.Stage))
					}
				}()
			}

			result, err := service.Extract(cmd.Context(), usecase.ExtractionInput{
				Image:    data,
				MIMEType: imaging.DetectMIMEType(data),
			}, progress)
			wg.Wait()
			if bar != nil {
				bar.Finish(err == nil)
			}
			if err != nil {
				return err
			}

			payload, err := usecase.MarshalExport(usecase.FormatExport(result.Groups))
			if err != nil {
				return err
			}

			if out != "" {
				if err := os.WriteFile(out, payload, 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			} else if _, err := cmd.OutOrStdout().Write(payload); err != nil {
				return err
			}

			if !quiet {
				printOutcome(cmd.ErrOrStderr(), result, out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the export JSON to this file instead of stdout")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "no progress bar or summary")
	return cmd
}
