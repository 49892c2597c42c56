package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/SimelweN/rebooked-reads-sub008/internal/model"
	"github.com/SimelweN/rebooked-reads-sub008/internal/repository"
)

type ReportView struct {
	Report       *model.Report `json:"report"`
	ReporterName string        `json:"reporter_name"`
}

type ModerationDashboard struct {
	Reports        []ReportView           `json:"reports"`
	SuspendedUsers []*model.SuspendedUser `json:"suspended_users"`
}

type ModerationService interface {
	Dashboard(ctx context.Context) (*ModerationDashboard, error)
	ResolveReport(ctx context.Context, reportID, status string) error
}

type moderationServiceImpl struct {
	moderationRepo repository.ModerationRepository
	profileRepo    repository.ProfileRepository
}

func NewModerationService(
	moderationRepo repository.ModerationRepository,
	profileRepo repository.ProfileRepository,
) ModerationService {
	return &moderationServiceImpl{
		moderationRepo: moderationRepo,
		profileRepo:    profileRepo,
	}
}

// Dashboard fetches reports and suspended users concurrently, then joins
// reporter names in from the profiles of the distinct reporter ids actually
// present. Either primary fetch failing fails the whole call; the profile
// enrichment is best-effort and reports stay visible without it.
func (s *moderationServiceImpl) Dashboard(ctx context.Context) (*ModerationDashboard, error) {
	var (
		wg           sync.WaitGroup
		reports      []*model.Report
		suspended    []*model.SuspendedUser
		reportsErr   error
		suspendedErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		reports, reportsErr = s.moderationRepo.ListReports(ctx)
	}()
	go func() {
		defer wg.Done()
		suspended, suspendedErr = s.moderationRepo.ListSuspendedUsers(ctx)
	}()
	wg.Wait()

	if reportsErr != nil {
		return nil, fmt.Errorf("list reports: %w", reportsErr)
	}
	if suspendedErr != nil {
		return nil, fmt.Errorf("list suspended users: %w", suspendedErr)
	}

	nameByID := s.reporterNames(ctx, reports)

	views := make([]ReportView, len(reports))
	for i, report := range reports {
		name, ok := nameByID[report.ReporterUserID]
		if !ok {
			name = "Anonymous"
		}
		views[i] = ReportView{Report: report, ReporterName: name}
	}

	return &ModerationDashboard{Reports: views, SuspendedUsers: suspended}, nil
}

// reporterNames fetches profiles only for the distinct reporter ids present,
// bounding the lookup. Failure is swallowed: the caller falls back to
// "Anonymous" for every reporter.
func (s *moderationServiceImpl) reporterNames(ctx context.Context, reports []*model.Report) map[string]string {
	seen := make(map[string]struct{})
	var ids []string
	for _, report := range reports {
		if report.ReporterUserID == "" {
			continue
		}
		if _, dup := seen[report.ReporterUserID]; dup {
			continue
		}
		seen[report.ReporterUserID] = struct{}{}
		ids = append(ids, report.ReporterUserID)
	}
	if len(ids) == 0 {
		return map[string]string{}
	}

	profiles, err := s.profileRepo.FindMany(ctx, ids)
	if err != nil {
		log.Println("fetch reporter profiles:", err)
		return map[string]string{}
	}

	names := make(map[string]string, len(profiles))
	for _, profile := range profiles {
		names[profile.ID] = DisplayName(profile)
	}
	return names
}

func (s *moderationServiceImpl) ResolveReport(ctx context.Context, reportID, status string) error {
	switch status {
	case "resolved", "dismissed", "pending":
	default:
		return fmt.Errorf("invalid report status %q", status)
	}
	return s.moderationRepo.UpdateReportStatus(ctx, reportID, status)
}

// DisplayName resolves a human-readable name by a fixed fallback chain:
// first+last name, then the legacy single name column, then the email
// local-part, then "Anonymous".
func DisplayName(profile *model.Profile) string {
	if profile == nil {
		return "Anonymous"
	}

	full := strings.TrimSpace(strings.TrimSpace(profile.FirstName) + " " + strings.TrimSpace(profile.LastName))
	if full != "" {
		return full
	}

	if name := strings.TrimSpace(profile.Name); name != "" {
		return name
	}

	if at := strings.Index(profile.Email, "@"); at > 0 {
		return profile.Email[:at]
	}

	return "Anonymous"
}
