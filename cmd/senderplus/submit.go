package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nao1215/senderplus/internal/client"
	"github.com/nao1215/senderplus/internal/config"
	"github.com/nao1215/senderplus/internal/model"
)

// NewSubmitCmd creates the submit command.
func NewSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a package to the delivery service",
		Long: `Submit sends a package submission to the delivery service and prints
the tracking ID issued for it.

Sender details can be prefilled from a profile in the .senderplus
configuration file; flags override profile values. Phone numbers may be
given as raw digits - they are formatted before transmission.

Examples:
  # Submit a package with explicit sender details
  senderplus submit \
    --sender-name "Ama Boateng" --sender-phone 0241234567 \
    --sender-email ama@example.com --sender-address "Accra" \
    --recipient-name "Kofi Mensah" --recipient-phone 0207654321 \
    --recipient-address "Legon Hall" \
    --package-name "Textbooks" --package-type Box --weight 2.5

  # Prefill sender details from the "work" profile
  senderplus submit --profile work --recipient-name "Kofi Mensah" ...

  # Attach a photo of the package
  senderplus submit ... --photo box.jpg

  # Submit every package listed in a YAML file, 5 at a time
  senderplus submit --list packages.yaml --batch 5`,
		RunE: runSubmitCmd,
	}

	// Sender flags
	cmd.Flags().String("sender-name", "", "Sender's full name")
	cmd.Flags().String("sender-phone", "", "Sender's phone number")
	cmd.Flags().String("sender-email", "", "Sender's email address")
	cmd.Flags().String("sender-address", "", "Sender's pickup address")
	cmd.Flags().StringP("profile", "p", "", "Sender profile from the configuration file")

	// Recipient flags
	cmd.Flags().String("recipient-name", "", "Recipient's full name")
	cmd.Flags().String("recipient-phone", "", "Recipient's phone number")
	cmd.Flags().String("recipient-email", "", "Recipient's email address (optional)")
	cmd.Flags().String("recipient-address", "", "Recipient's delivery address")

	// Package flags
	cmd.Flags().String("package-name", "", "Short name for the package")
	cmd.Flags().String("package-type", "", "Package type (e.g., Box, Envelope)")
	cmd.Flags().String("weight", "", "Weight in kilograms (blank defaults to 0)")
	cmd.Flags().String("value", "", "Declared value in GHS (optional)")
	cmd.Flags().String("description", "", "Free-form description of the contents (optional)")
	cmd.Flags().String("photo", "", "Path to a photo of the package (optional)")

	// Batch flags
	cmd.Flags().StringP("list", "l", "", "YAML file listing multiple submissions")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize, "Number of concurrent submissions with --list")

	addClientFlags(cmd)

	return cmd
}

// runSubmitCmd executes the submit command.
func runSubmitCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildClientConfig(cmd)
	if err != nil {
		return err
	}
	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	listPath, err := cmd.Flags().GetString("list")
	if err != nil {
		return err
	}
	if listPath != "" {
		return runBatchSubmit(ctx, cmd, cfg, listPath)
	}

	sub, err := submissionFromFlags(cmd, cfg)
	if err != nil {
		return err
	}

	c, err := newServiceClient(cfg, logger)
	if err != nil {
		return err
	}

	receipt, err := c.Submit(ctx, sub)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Package submitted successfully.\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  Sender:      %s\n", receipt.SenderName)
	fmt.Fprintf(cmd.OutOrStdout(), "  Tracking ID: %s\n", receipt.TrackingID)
	fmt.Fprintf(cmd.OutOrStdout(), "\nTrack it with: senderplus track %s\n", receipt.TrackingID)

	return nil
}

// submissionFromFlags builds a submission from command flags, prefilled
// from the named sender profile when one applies.
func submissionFromFlags(cmd *cobra.Command, cfg *config.Config) (model.PackageSubmission, error) {
	var sub model.PackageSubmission

	profileName, err := cmd.Flags().GetString("profile")
	if err != nil {
		return sub, err
	}
	profile, ok := cfg.Profiles.GetProfile(profileName)
	if !ok {
		return sub, fmt.Errorf("%w: %q", config.ErrUnknownProfile, profileName)
	}
	sub.SenderName = profile.Name
	sub.SenderPhone = profile.Phone
	sub.SenderEmail = profile.Email
	sub.SenderAddress = profile.Address

	// Flags override profile values.
	stringFlags := []struct {
		name string
		dst  *string
	}{
		{"sender-name", &sub.SenderName},
		{"sender-phone", &sub.SenderPhone},
		{"sender-email", &sub.SenderEmail},
		{"sender-address", &sub.SenderAddress},
		{"recipient-name", &sub.RecipientName},
		{"recipient-phone", &sub.RecipientPhone},
		{"recipient-email", &sub.RecipientEmail},
		{"recipient-address", &sub.RecipientAddress},
		{"package-name", &sub.PackageName},
		{"package-type", &sub.PackageType},
		{"weight", &sub.Weight},
		{"value", &sub.Value},
		{"description", &sub.Description},
	}
	for _, f := range stringFlags {
		v, err := cmd.Flags().GetString(f.name)
		if err != nil {
			return sub, err
		}
		if v != "" {
			*f.dst = v
		}
	}

	photoPath, err := cmd.Flags().GetString("photo")
	if err != nil {
		return sub, err
	}
	if photoPath != "" {
		if err := attachPhoto(&sub, photoPath); err != nil {
			return sub, err
		}
	}

	return sub, nil
}

// attachPhoto loads a photo file into the submission.
func attachPhoto(sub *model.PackageSubmission, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided photo path is intentional
	if err != nil {
		return fmt.Errorf("failed to read photo %s: %w", path, err)
	}
	sub.Photo = data
	sub.PhotoFilename = filepath.Base(path)
	return nil
}

// submissionList is the YAML shape of a --list file.
type submissionList struct {
	Submissions []submissionEntry `yaml:"submissions"`
}

// submissionEntry is one submission in a --list file.
// Field names follow the wire schema so a list file reads like the form.
type submissionEntry struct {
	SenderName       string `yaml:"sender_name"`
	SenderPhone      string `yaml:"sender_phone"`
	SenderEmail      string `yaml:"sender_email"`
	SenderAddress    string `yaml:"sender_address"`
	RecipientName    string `yaml:"recipient_name"`
	RecipientPhone   string `yaml:"recipient_phone"`
	RecipientEmail   string `yaml:"recipient_email,omitempty"`
	RecipientAddress string `yaml:"recipient_address"`
	PackageName      string `yaml:"package_name"`
	PackageType      string `yaml:"package_type"`
	Weight           string `yaml:"weight,omitempty"`
	Value            string `yaml:"value,omitempty"`
	Description      string `yaml:"description,omitempty"`
	Photo            string `yaml:"photo,omitempty"`
}

// loadSubmissionList reads submissions from a YAML list file.
// Each entry may be prefilled from the named profile, and photo paths are
// resolved relative to the list file.
func loadSubmissionList(path string, profile config.Profile) ([]model.PackageSubmission, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read submission list %s: %w", path, err)
	}

	var list submissionList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse submission list %s: %w", path, err)
	}
	if len(list.Submissions) == 0 {
		return nil, errors.New("submission list is empty")
	}

	baseDir := filepath.Dir(path)
	subs := make([]model.PackageSubmission, 0, len(list.Submissions))
	for _, e := range list.Submissions {
		sub := model.PackageSubmission{
			SenderName:       e.SenderName,
			SenderPhone:      e.SenderPhone,
			SenderEmail:      e.SenderEmail,
			SenderAddress:    e.SenderAddress,
			RecipientName:    e.RecipientName,
			RecipientPhone:   e.RecipientPhone,
			RecipientEmail:   e.RecipientEmail,
			RecipientAddress: e.RecipientAddress,
			PackageName:      e.PackageName,
			PackageType:      e.PackageType,
			Weight:           e.Weight,
			Value:            e.Value,
			Description:      e.Description,
		}

		// Profile fills sender gaps the entry leaves empty.
		if sub.SenderName == "" {
			sub.SenderName = profile.Name
		}
		if sub.SenderPhone == "" {
			sub.SenderPhone = profile.Phone
		}
		if sub.SenderEmail == "" {
			sub.SenderEmail = profile.Email
		}
		if sub.SenderAddress == "" {
			sub.SenderAddress = profile.Address
		}

		if e.Photo != "" {
			photoPath := e.Photo
			if !filepath.IsAbs(photoPath) {
				photoPath = filepath.Join(baseDir, photoPath)
			}
			if err := attachPhoto(&sub, photoPath); err != nil {
				return nil, err
			}
		}

		subs = append(subs, sub)
	}

	return subs, nil
}

// runBatchSubmit submits every package in a list file concurrently.
func runBatchSubmit(ctx context.Context, cmd *cobra.Command, cfg *config.Config, listPath string) error {
	logger := setupLogger(cfg.Verbose)

	profileName, err := cmd.Flags().GetString("profile")
	if err != nil {
		return err
	}
	profile, ok := cfg.Profiles.GetProfile(profileName)
	if !ok {
		return fmt.Errorf("%w: %q", config.ErrUnknownProfile, profileName)
	}

	subs, err := loadSubmissionList(listPath, profile)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Submitting %d packages (concurrency: %d)...\n\n",
		len(subs), cfg.BatchSize)

	startTime := time.Now()

	b := client.NewBatchSubmitter(
		func() (*client.Client, error) {
			return newServiceClient(cfg, logger)
		},
		client.WithBatchConcurrency(cfg.BatchSize),
		client.WithBatchLogger(logger),
	)

	results, err := b.SubmitAll(ctx, subs)
	if err != nil {
		return err
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s: FAILED (%v)\n",
				r.Index+1, len(subs), subs[r.Index].PackageName, r.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s: %s\n",
			r.Index+1, len(subs), subs[r.Index].PackageName, r.Receipt.TrackingID)
	}

	elapsed := time.Since(startTime)
	fmt.Fprintf(cmd.OutOrStdout(), "\nSubmitted %d/%d packages in %s\n",
		len(subs)-failed, len(subs), elapsed.Round(time.Millisecond))

	if failed > 0 {
		return fmt.Errorf("%d of %d submissions failed", failed, len(subs))
	}
	return nil
}
