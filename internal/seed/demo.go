// Package seed creates demo accounts and data for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"filmroom/internal/auth"
	"filmroom/internal/domain/models"
	"filmroom/internal/domain/services"
)

const (
	demoAthleteEmail = "athlete@filmroom.demo"
	demoCoachEmail   = "coach@filmroom.demo"
	demoPassword     = "filmroom-demo-password"
)

// DemoSeeder builds a small athlete/coach scenario through the service
// layer, so seeding exercises the same code paths the server does.
type DemoSeeder struct {
	admin  *auth.AdminClient
	access services.AccessService
	videos services.VideoService
	logger *slog.Logger
}

// NewDemoSeeder creates a new demo seeder
func NewDemoSeeder(admin *auth.AdminClient, access services.AccessService, videos services.VideoService, logger *slog.Logger) *DemoSeeder {
	return &DemoSeeder{
		admin:  admin,
		access: access,
		videos: videos,
		logger: logger,
	}
}

// Seed recreates the demo accounts and seeds a shared folder with one
// accepted invitation, one pending invitation, a video and comments.
func (s *DemoSeeder) Seed(ctx context.Context) error {
	// Recreate demo users from scratch so reruns stay deterministic.
	for _, email := range []string{demoAthleteEmail, demoCoachEmail} {
		if err := s.admin.DeleteUserByEmail(email); err != nil {
			return fmt.Errorf("delete demo user %s: %w", email, err)
		}
	}

	athleteID, err := s.admin.CreateUser(demoAthleteEmail, demoPassword, "Demo Athlete", "premium")
	if err != nil {
		return fmt.Errorf("create demo athlete: %w", err)
	}
	coachID, err := s.admin.CreateUser(demoCoachEmail, demoPassword, "Demo Coach", "free")
	if err != nil {
		return fmt.Errorf("create demo coach: %w", err)
	}
	s.logger.Info("demo users created", "athlete_id", athleteID, "coach_id", coachID)

	folder, err := s.access.CreateFolder(ctx, &services.CreateFolderRequest{
		Name:      "Season Opener",
		OwnerID:   athleteID,
		OwnerName: "Demo Athlete",
		Plan:      "premium",
	})
	if err != nil {
		return fmt.Errorf("create demo folder: %w", err)
	}

	inv, err := s.access.InviteCoach(ctx, &services.InviteRequest{
		FolderID:  folder.ID,
		OwnerID:   athleteID,
		OwnerName: "Demo Athlete",
		Email:     demoCoachEmail,
	})
	if err != nil {
		return fmt.Errorf("invite demo coach: %w", err)
	}
	if _, err := s.access.AcceptInvitation(ctx, inv.ID, coachID); err != nil {
		return fmt.Errorf("accept demo invitation: %w", err)
	}

	// A second, still-pending invitation so the coach inbox is not empty.
	viewOnly := models.Permission{}
	if _, err := s.access.InviteCoach(ctx, &services.InviteRequest{
		FolderID:   folder.ID,
		OwnerID:    athleteID,
		OwnerName:  "Demo Athlete",
		Email:      "scout@filmroom.demo",
		Permission: &viewOnly,
	}); err != nil {
		return fmt.Errorf("invite demo scout: %w", err)
	}

	result, err := s.videos.RegisterVideo(ctx, &services.RegisterVideoRequest{
		FolderID:    folder.ID,
		CallerID:    athleteID,
		Plan:        "premium",
		Title:       "First quarter highlights",
		DurationSec: 142,
	})
	if err != nil {
		return fmt.Errorf("register demo video: %w", err)
	}

	for _, text := range []string{
		"Great spacing on the opening drive.",
		"Watch your footwork at 1:05 - you plant too early.",
	} {
		if _, err := s.videos.AddComment(ctx, &services.AddCommentRequest{
			VideoID:    result.Video.ID,
			AuthorID:   coachID,
			AuthorName: "Demo Coach",
			Text:       text,
		}); err != nil {
			return fmt.Errorf("add demo comment: %w", err)
		}
	}

	s.logger.Info("demo scenario seeded",
		"folder_id", folder.ID,
		"video_id", result.Video.ID,
	)
	return nil
}
