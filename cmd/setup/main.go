// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Command setup provisions the document: the admin identity, a default
// profile and empty collections.
//
// Credentials come from ADMIN_USERNAME and ADMIN_PASSWORD. The generated API
// key is printed once and only its digest is stored. An existing document is
// kept unless -force is given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/apperr"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/bootstrap"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/config"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/constants"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/docstore"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/sec"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/validate"
	"github.com/dwikiramdani/kiramdashboard/pkg/uuid"
)

// minPasswordLength is the shortest admin password accepted.
const minPasswordLength = 8

func main() {
	force := flag.Bool("force", false, "overwrite an existing document")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With(slog.String("app", constants.AppName))

	if err := run(*force, log); err != nil {
		log.Error("setup_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(force bool, log *slog.Logger) error {
	cfg, err := config.LoadSetup()
	if err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.Required("ADMIN_USERNAME", cfg.AdminUsername).
		MinLen("ADMIN_PASSWORD", cfg.AdminPassword, minPasswordLength)
	if err := validator.Err(); err != nil {
		return fmt.Errorf("setup: invalid admin credentials: %v", apperr.As(err).Details)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	storage, err := bootstrap.OpenStorage(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer storage.Close()

	document, apiKey, err := seed(cfg.AdminUsername, cfg.AdminPassword, time.Now().UTC())
	if err != nil {
		return err
	}

	err = docstore.Provision(ctx, storage.Backend, document, force)
	if errors.Is(err, docstore.ErrAlreadyProvisioned) {
		return errors.New("setup: document already exists; rerun with -force to overwrite")
	}
	if err != nil {
		return err
	}

	log.Info("document_provisioned",
		slog.String("backend", storage.Backend.Name()),
		slog.String("username", cfg.AdminUsername),
		slog.Bool("forced", force),
	)

	fmt.Println("Document initialized.")
	fmt.Println("Username:", cfg.AdminUsername)
	fmt.Println("API key (shown once):", apiKey)
	return nil
}

// seed builds the initial document and returns the raw API key alongside it.
func seed(username, password string, now time.Time) (*docstore.Document, string, error) {
	hash, err := sec.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	apiKey, err := sec.GenerateAPIKey()
	if err != nil {
		return nil, "", err
	}

	document := &docstore.Document{
		Identity: docstore.IdentityRecord{
			ID:             uuid.New(),
			Username:       username,
			PasswordHash:   hash,
			APIKeyDigest:   sec.HashAPIKey(apiKey),
			APIKeyIssuedAt: &now,
			CreatedAt:      now,
		},
		Profile: docstore.ProfileRecord{
			ProfilePicture: constants.DefaultProfilePicture,
			Headline:       "Full Stack Developer",
			Summary:        "Passionate developer with experience in building web applications.",
			Techstack:      []string{"Go", "PostgreSQL", "GraphQL"},
			UpdatedAt:      now,
		},
		Experiences: []docstore.ExperienceRecord{},
		Projects:    []docstore.ProjectRecord{},
	}
	return document, apiKey, nil
}
