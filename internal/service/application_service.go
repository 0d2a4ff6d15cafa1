package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"awardflow/internal/models"
	"awardflow/internal/pipeline"
	"awardflow/internal/repository"
	"awardflow/internal/scoring"
)

// ApplicationView is the fully assembled read model of one application:
// the stored record plus the derived totals and stage progression.
type ApplicationView struct {
	models.Application
	Stats         scoring.Stats      `json:"stats"`
	AdjustedTotal float64            `json:"adjusted_total"`
	Stage         pipeline.StageView `json:"stage"`
}

// ApplicationService handles business logic for award applications
type ApplicationService struct {
	applicationRepo *repository.ApplicationRepository
	parameterRepo   *repository.ParameterRepository
	graceMarkRepo   *repository.GraceMarkRepository
	priorityRepo    *repository.PriorityRepository
	withdrawalRepo  *repository.WithdrawalRepository
	auditService    *AuditService
}

// NewApplicationService creates a new application service
func NewApplicationService(
	applicationRepo *repository.ApplicationRepository,
	parameterRepo *repository.ParameterRepository,
	graceMarkRepo *repository.GraceMarkRepository,
	priorityRepo *repository.PriorityRepository,
	withdrawalRepo *repository.WithdrawalRepository,
	auditService *AuditService,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		parameterRepo:   parameterRepo,
		graceMarkRepo:   graceMarkRepo,
		priorityRepo:    priorityRepo,
		withdrawalRepo:  withdrawalRepo,
		auditService:    auditService,
	}
}

// SubmitRequest is the payload for a new application submission
type SubmitRequest struct {
	Type       models.ApplicationType `json:"type"`
	UnitID     uint                   `json:"unit_id"`
	LastDate   *time.Time             `json:"last_date,omitempty"`
	Parameters []models.Parameter     `json:"parameters"`
}

// Submit creates a new application with its parameter set
func (s *ApplicationService) Submit(req SubmitRequest, userID uint) (*models.Application, error) {
	if req.Type != models.TypeCitation && req.Type != models.TypeAppreciation {
		return nil, fmt.Errorf("invalid application type %q", req.Type)
	}

	app := &models.Application{
		Type:       req.Type,
		UnitID:     req.UnitID,
		DateInit:   time.Now(),
		StatusFlag: models.StatusPending,
		LastDate:   req.LastDate,
	}

	if err := s.applicationRepo.Create(app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	if len(req.Parameters) > 0 {
		if err := s.parameterRepo.CreateBatch(app.ID, req.Parameters); err != nil {
			return nil, fmt.Errorf("failed to create parameters: %w", err)
		}
		app.Parameters = req.Parameters
	}

	s.auditService.Log(userID, "application.submit", fmt.Sprintf("application/%d", app.ID),
		fmt.Sprintf("type=%s unit=%d parameters=%d", app.Type, app.UnitID, len(req.Parameters)))

	return app, nil
}

// Get loads a fully assembled application view. The stage resolver runs in
// command mode when the viewing role is a unit.
func (s *ApplicationService) Get(id uint, viewerRole models.Role) (*ApplicationView, error) {
	app, err := s.load(id)
	if err != nil {
		return nil, err
	}
	view := s.assemble(*app, viewerRole)
	return &view, nil
}

// List retrieves assembled views of all applications visible to the viewer.
// Units see their own submissions; reviewer roles see everything.
func (s *ApplicationService) List(viewerRole models.Role, unitID *uint) ([]ApplicationView, error) {
	var apps []models.Application
	var err error
	if viewerRole == models.RoleUnit && unitID != nil {
		apps, err = s.applicationRepo.ListByUnit(*unitID)
	} else {
		apps, err = s.applicationRepo.ListAll()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	views := make([]ApplicationView, 0, len(apps))
	for _, app := range apps {
		if err := s.attachDetails(&app); err != nil {
			return nil, err
		}
		views = append(views, s.assemble(app, viewerRole))
	}
	return views, nil
}

// ListShortlisted retrieves shortlisted applications ordered by the viewing
// role's priority values
func (s *ApplicationService) ListShortlisted(viewerRole models.Role) ([]ApplicationView, error) {
	apps, err := s.applicationRepo.ListByStatus(models.StatusShortlistedApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list shortlisted applications: %w", err)
	}

	for i := range apps {
		if err := s.attachDetails(&apps[i]); err != nil {
			return nil, err
		}
	}
	pipeline.SortByPriority(apps, viewerRole)

	views := make([]ApplicationView, 0, len(apps))
	for _, app := range apps {
		views = append(views, s.assemble(app, viewerRole))
	}
	return views, nil
}

// SetApprovedMarks records a reviewer override of a parameter's marks
func (s *ApplicationService) SetApprovedMarks(parameterID uint, marks float64, userID uint) error {
	param, err := s.parameterRepo.GetByID(parameterID)
	if err != nil {
		return fmt.Errorf("failed to get parameter: %w", err)
	}
	if param == nil {
		return ErrParameterNotFound
	}

	if err := s.parameterRepo.SetApprovedMarks(parameterID, marks); err != nil {
		return fmt.Errorf("failed to set approved marks: %w", err)
	}

	s.auditService.Log(userID, "parameter.approve_marks", fmt.Sprintf("parameter/%d", parameterID),
		fmt.Sprintf("marks=%.2f", marks))
	return nil
}

// RaiseClarification opens a clarification thread on a parameter
func (s *ApplicationService) RaiseClarification(parameterID uint, role models.Role, message string, userID uint) error {
	param, err := s.parameterRepo.GetByID(parameterID)
	if err != nil {
		return fmt.Errorf("failed to get parameter: %w", err)
	}
	if param == nil {
		return ErrParameterNotFound
	}

	if err := s.parameterRepo.RaiseClarification(parameterID, role, message, time.Now()); err != nil {
		return fmt.Errorf("failed to raise clarification: %w", err)
	}

	s.auditService.Log(userID, "clarification.raise", fmt.Sprintf("parameter/%d", parameterID),
		fmt.Sprintf("role=%s", role))
	return nil
}

// ResolveClarification closes a clarification thread. A rejected resolution
// permanently excludes the parameter from every aggregate.
func (s *ApplicationService) ResolveClarification(parameterID uint, status models.ClarificationStatus, response string, userID uint) error {
	if status != models.ClarificationClarified && status != models.ClarificationRejected {
		return fmt.Errorf("invalid clarification resolution %q", status)
	}

	param, err := s.parameterRepo.GetByID(parameterID)
	if err != nil {
		return fmt.Errorf("failed to get parameter: %w", err)
	}
	if param == nil {
		return ErrParameterNotFound
	}

	if err := s.parameterRepo.ResolveClarification(parameterID, status, response, time.Now()); err != nil {
		return fmt.Errorf("%w: %v", ErrNoClarification, err)
	}

	s.auditService.Log(userID, "clarification.resolve", fmt.Sprintf("parameter/%d", parameterID),
		fmt.Sprintf("status=%s", status))
	return nil
}

// AttachUpload records a supporting document reference on a parameter
func (s *ApplicationService) AttachUpload(parameterID uint, fileName string, userID uint) (*models.UploadRef, error) {
	param, err := s.parameterRepo.GetByID(parameterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get parameter: %w", err)
	}
	if param == nil {
		return nil, ErrParameterNotFound
	}

	upload := &models.UploadRef{
		ID:          uuid.NewString(),
		ParameterID: parameterID,
		FileName:    fileName,
	}
	if err := s.parameterRepo.AddUpload(upload); err != nil {
		return nil, fmt.Errorf("failed to attach upload: %w", err)
	}

	s.auditService.Log(userID, "parameter.upload", fmt.Sprintf("parameter/%d", parameterID), fileName)
	return upload, nil
}

// load fetches an application with all of its lanes attached
func (s *ApplicationService) load(id uint) (*models.Application, error) {
	app, err := s.applicationRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return nil, ErrApplicationNotFound
	}
	if err := s.attachDetails(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) attachDetails(app *models.Application) error {
	params, err := s.parameterRepo.GetByApplication(app.ID)
	if err != nil {
		return fmt.Errorf("failed to load parameters: %w", err)
	}
	app.Parameters = params

	grace, err := s.graceMarkRepo.GetByApplication(app.ID)
	if err != nil {
		return fmt.Errorf("failed to load grace marks: %w", err)
	}
	app.GraceMarks = grace

	priorities, err := s.priorityRepo.GetByApplication(app.ID)
	if err != nil {
		return fmt.Errorf("failed to load priorities: %w", err)
	}
	app.Priorities = priorities

	withdrawal, err := s.withdrawalRepo.GetByApplication(app.ID)
	if err != nil {
		return fmt.Errorf("failed to load withdrawal: %w", err)
	}
	app.Withdrawal = withdrawal

	return nil
}

func (s *ApplicationService) assemble(app models.Application, viewerRole models.Role) ApplicationView {
	stats := scoring.ComputeStats(app.Parameters)
	return ApplicationView{
		Application:   app,
		Stats:         stats,
		AdjustedTotal: scoring.AdjustedTotal(stats, app.GraceMarks, viewerRole),
		Stage:         pipeline.ResolveStage(app, viewerRole == models.RoleUnit),
	}
}
