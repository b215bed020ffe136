package repository

import (
	"context"
	"testing"
	"time"

	"github.com/kellerh/ai-procurement/internal/models"
	"github.com/kellerh/ai-procurement/internal/workflow"
	"github.com/kellerh/ai-procurement/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(database.Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrator := database.NewMigrator(db, zap.NewNop())
	require.NoError(t, migrator.RunMigrations("../../migrations"))

	return db
}

func sampleRequest() models.ProcurementRequest {
	request := models.NewProcurementRequest("New CRM", "Cloud CRM for the sales team")
	budget := 50000.0
	request.EstimatedBudget = &budget
	request.Department = "Sales"
	request.Requester = "m.okafor"
	return request
}

func TestRequestRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db, zap.NewNop())
	ctx := context.Background()

	request := sampleRequest()
	require.NoError(t, repo.Create(ctx, &request))

	got, err := repo.GetByID(ctx, request.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, request.Title, got.Title)
	assert.Equal(t, request.Department, got.Department)
	require.NotNil(t, got.EstimatedBudget)
	assert.Equal(t, 50000.0, *got.EstimatedBudget)
	assert.Nil(t, got.RequiredByDate)
}

func TestRequestRepository_GetMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewRequestRepository(db, zap.NewNop())

	got, err := repo.GetByID(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRFPRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	requests := NewRequestRepository(db, zap.NewNop())
	rfps := NewRFPRepository(db, zap.NewNop())
	ctx := context.Background()

	request := sampleRequest()
	require.NoError(t, requests.Create(ctx, &request))

	rfp := models.NewRFP(request.ID, "RFP for New CRM", models.CategorySoftware, "# Request for Proposal\n\n## Project Overview\nCRM rollout")
	rfp.Suppliers = []models.Supplier{
		{Name: "Acme Corp", Email: "sales@acme.example", ContactPerson: "J. Doe"},
	}
	require.NoError(t, rfps.Create(ctx, rfp))

	got, err := rfps.GetByID(ctx, rfp.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.CategorySoftware, got.Category)
	assert.Equal(t, models.RFPStatusPendingApproval, got.Status)
	require.Len(t, got.Suppliers, 1)
	assert.Equal(t, "Acme Corp", got.Suppliers[0].Name)
	assert.Equal(t, "J. Doe", got.Suppliers[0].ContactPerson)

	byRequest, err := rfps.GetByRequestID(ctx, request.ID)
	require.NoError(t, err)
	require.Len(t, byRequest, 1)
	assert.Equal(t, rfp.ID, byRequest[0].ID)
}

func TestRFPRepository_ListFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	requests := NewRequestRepository(db, zap.NewNop())
	rfps := NewRFPRepository(db, zap.NewNop())
	ctx := context.Background()

	request := sampleRequest()
	require.NoError(t, requests.Create(ctx, &request))

	pending := models.NewRFP(request.ID, "RFP A", models.CategorySoftware, "content")
	require.NoError(t, rfps.Create(ctx, pending))

	approved := models.NewRFP(request.ID, "RFP B", models.CategoryHardware, "content")
	require.NoError(t, approved.Transition(models.RFPStatusApproved))
	require.NoError(t, rfps.Create(ctx, approved))

	got, err := rfps.List(ctx, models.RFPStatusApproved, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "RFP B", got[0].Title)

	all, err := rfps.List(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRunRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewRunRepository(db, zap.NewNop())
	ctx := context.Background()

	run := &models.WorkflowRun{
		RequestID:  "req-1",
		RFPID:      "rfp-1",
		Phase:      "COMPLETED",
		Status:     "RFP sent to suppliers",
		Category:   "Software",
		Confidence: 0.93,
		EmailSent:  true,
	}
	require.NoError(t, repo.Create(ctx, run))
	assert.NotZero(t, run.ID)

	runs, err := repo.GetByRequestID(ctx, "req-1")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "COMPLETED", runs[0].Phase)
	assert.True(t, runs[0].EmailSent)
	assert.InDelta(t, 0.93, runs[0].Confidence, 1e-9)
}

func TestArchiver_ArchiveRun(t *testing.T) {
	db := newTestDB(t)
	logger := zap.NewNop()
	requests := NewRequestRepository(db, logger)
	rfps := NewRFPRepository(db, logger)
	runs := NewRunRepository(db, logger)
	archiver := NewArchiver(db, requests, rfps, runs, logger)
	ctx := context.Background()

	request := sampleRequest()
	rfp := models.NewRFP(request.ID, "RFP for New CRM", models.CategorySoftware, "content")
	state := workflow.NewState(request)
	state.Classification = &models.Classification{
		RequestID:  request.ID,
		Category:   models.CategorySoftware,
		Confidence: 0.9,
	}
	state.RFP = rfp
	state.EmailSent = true
	state.Status = "RFP sent to suppliers"

	require.NoError(t, archiver.ArchiveRun(ctx, state))

	gotRequest, err := requests.GetByID(ctx, request.ID)
	require.NoError(t, err)
	require.NotNil(t, gotRequest)

	gotRFP, err := rfps.GetByID(ctx, rfp.ID)
	require.NoError(t, err)
	require.NotNil(t, gotRFP)

	gotRuns, err := runs.GetByRequestID(ctx, request.ID)
	require.NoError(t, err)
	require.Len(t, gotRuns, 1)
	assert.Equal(t, rfp.ID, gotRuns[0].RFPID)
	assert.Equal(t, "Software", gotRuns[0].Category)
}

func TestArchiver_RollsBackOnRFPFailure(t *testing.T) {
	db := newTestDB(t)
	logger := zap.NewNop()
	requests := NewRequestRepository(db, logger)
	rfps := NewRFPRepository(db, logger)
	runs := NewRunRepository(db, logger)
	archiver := NewArchiver(db, requests, rfps, runs, logger)
	ctx := context.Background()

	request := sampleRequest()
	rfp := models.NewRFP(request.ID, "RFP", models.CategorySoftware, "content")
	state := workflow.NewState(request)
	state.RFP = rfp

	// Inserting the same RFP twice violates the primary key and must
	// roll back the whole archive, including the request row.
	require.NoError(t, rfps.Create(ctx, rfp))
	require.Error(t, archiver.ArchiveRun(ctx, state))

	gotRequest, err := requests.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Nil(t, gotRequest)
}
