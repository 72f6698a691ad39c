package leave_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"leavedesk/internal/authz"
	"leavedesk/internal/events"
	"leavedesk/internal/leave"
	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/leavebalance"
	leavebalanceerrors "leavedesk/internal/leavebalance/errors"
	"leavedesk/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn               func(tx *sql.Tx) leave.Repository
	createFn               func(ctx context.Context, l *leave.Leave) error
	findByIDFn             func(ctx context.Context, id string) (*leave.Leave, error)
	findByIDVisibleFn      func(ctx context.Context, id string, actor leave.Actor) (*leave.Leave, error)
	findAllVisibleFn       func(ctx context.Context, actor leave.Actor) ([]leave.Leave, error)
	updateDetailsFn        func(ctx context.Context, l *leave.Leave) (int64, error)
	reviewIfPendingFn      func(ctx context.Context, id, status string, approverID uuid.UUID, approvedAt time.Time, comment *string) (int64, error)
	cancelIfPendingFn      func(ctx context.Context, id string) (int64, error)
	deleteFn               func(ctx context.Context, id string) error
	hasOverlappingPeriodFn func(ctx context.Context, requesterID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByIDVisible(ctx context.Context, id string, actor leave.Actor) (*leave.Leave, error) {
	if f.findByIDVisibleFn != nil {
		return f.findByIDVisibleFn(ctx, id, actor)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindAllVisible(ctx context.Context, actor leave.Actor) ([]leave.Leave, error) {
	if f.findAllVisibleFn != nil {
		return f.findAllVisibleFn(ctx, actor)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) UpdateDetailsIfPending(ctx context.Context, l *leave.Leave) (int64, error) {
	if f.updateDetailsFn != nil {
		return f.updateDetailsFn(ctx, l)
	}
	return 1, nil
}

func (f *fakeLeaveRepository) ReviewIfPending(ctx context.Context, id, status string, approverID uuid.UUID, approvedAt time.Time, comment *string) (int64, error) {
	if f.reviewIfPendingFn != nil {
		return f.reviewIfPendingFn(ctx, id, status, approverID, approvedAt, comment)
	}
	return 1, nil
}

func (f *fakeLeaveRepository) CancelIfPending(ctx context.Context, id string) (int64, error) {
	if f.cancelIfPendingFn != nil {
		return f.cancelIfPendingFn(ctx, id)
	}
	return 1, nil
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, requesterID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, requesterID, startDate, endDate, excludeID)
	}
	return false, nil
}

type fakeBalanceRepository struct {
	withTxFn func(tx *sql.Tx) leavebalance.Repository
	debitFn  func(ctx context.Context, employeeID, leaveTypeID string, year, days int) error
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) leavebalance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeBalanceRepository) FindByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leavebalance.Balance, error) {
	return nil, nil
}

func (f *fakeBalanceRepository) Upsert(ctx context.Context, employeeID, leaveTypeID string, year, allowanceDays int) (*leavebalance.Balance, error) {
	return nil, nil
}

func (f *fakeBalanceRepository) Debit(ctx context.Context, employeeID, leaveTypeID string, year, days int) error {
	if f.debitFn != nil {
		return f.debitFn(ctx, employeeID, leaveTypeID, year, days)
	}
	return nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type leaveServiceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     leave.Service
	repo        *fakeLeaveRepository
	balanceRepo *fakeBalanceRepository
	outboxRepo  *fakeOutboxRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	balanceRepo := &fakeBalanceRepository{}
	outboxRepo := &fakeOutboxRepository{}
	svc := leave.NewService(db, repo, balanceRepo, outboxRepo)

	return &leaveServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, balanceRepo: balanceRepo, outboxRepo: outboxRepo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func pendingLeave(requesterID, leaveTypeID uuid.UUID) *leave.Leave {
	return &leave.Leave{
		ID:          uuid.New(),
		RequesterID: requesterID,
		LeaveTypeID: leaveTypeID,
		StartDate:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
		DaysCount:   5,
		Status:      leave.StatusPending,
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	leaveTypeID := uuid.New()
	actor := leave.Actor{EmployeeID: requesterID.String(), Role: authz.RoleEmployee}

	t.Run("success counts both endpoints", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		var enqueued kafka.OutboxEvent
		deps.outboxRepo.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			enqueued = event
			return nil
		}

		resp, err := deps.service.Create(ctx, actor, leave.CreateLeaveRequest{
			LeaveTypeID: leaveTypeID.String(),
			StartDate:   "2025-02-01",
			EndDate:     "2025-02-05",
			Reason:      "family trip",
		})

		assert.NoError(t, err)
		assert.Equal(t, 5, resp.DaysCount)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, requesterID.String(), resp.RequesterID)

		assert.Equal(t, events.EventTypeLeaveRequested, enqueued.EventType)
		assert.Equal(t, events.LeaveLifecycleTopic, enqueued.Topic)
		var evt events.LeaveLifecycleEvent
		assert.NoError(t, json.Unmarshal(enqueued.Payload, &evt))
		assert.Equal(t, resp.ID, evt.LeaveID)
		assert.Equal(t, leave.StatusPending, evt.NewStatus)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("single day leave is one day", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.Create(ctx, actor, leave.CreateLeaveRequest{
			LeaveTypeID: leaveTypeID.String(),
			StartDate:   "2025-03-10",
			EndDate:     "2025-03-10",
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.DaysCount)
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, actor, leave.CreateLeaveRequest{
			LeaveTypeID: leaveTypeID.String(),
			StartDate:   "2025-02-05",
			EndDate:     "2025-02-01",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative overlapping period", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, rid string, s, e time.Time, excludeID *string) (bool, error) {
			assert.Equal(t, requesterID.String(), rid)
			assert.Nil(t, excludeID)
			return true, nil
		}

		_, err := deps.service.Create(ctx, actor, leave.CreateLeaveRequest{
			LeaveTypeID: leaveTypeID.String(),
			StartDate:   "2025-02-01",
			EndDate:     "2025-02-05",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	leaveTypeID := uuid.New()
	managerID := uuid.New()
	manager := leave.Actor{EmployeeID: managerID.String(), Role: authz.RoleManager}

	t.Run("success debits balance and records approver", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave(requesterID, leaveTypeID)

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		debited := false
		deps.balanceRepo.debitFn = func(ctx context.Context, employeeID, ltID string, year, days int) error {
			debited = true
			assert.Equal(t, requesterID.String(), employeeID)
			assert.Equal(t, leaveTypeID.String(), ltID)
			assert.Equal(t, 2025, year)
			assert.Equal(t, 5, days)
			return nil
		}
		var enqueued kafka.OutboxEvent
		deps.outboxRepo.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			enqueued = event
			return nil
		}

		comment := "enjoy"
		resp, err := deps.service.Approve(ctx, manager, l.ID.String(), &comment)

		assert.NoError(t, err)
		assert.True(t, debited)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApproverID)
		assert.Equal(t, managerID.String(), *resp.ApproverID)
		assert.NotNil(t, resp.ApprovedAt)
		assert.Equal(t, events.EventTypeLeaveApproved, enqueued.EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative actor lacks approve permission", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		employeeActor := leave.Actor{EmployeeID: uuid.New().String(), Role: authz.RoleEmployee}
		_, err := deps.service.Approve(ctx, employeeActor, uuid.New().String(), nil)

		assert.ErrorIs(t, err, leaveerrors.ErrApprovalNotAllowed)
	})

	t.Run("negative self review", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave(managerID, leaveTypeID)

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		_, err := deps.service.Approve(ctx, manager, l.ID.String(), nil)

		assert.ErrorIs(t, err, leaveerrors.ErrSelfReview)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative race loser gets invalid transition", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave(requesterID, leaveTypeID)

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			// Another reviewer won between the read and the write.
			return l, nil
		}
		deps.repo.reviewIfPendingFn = func(ctx context.Context, id, status string, approverID uuid.UUID, approvedAt time.Time, comment *string) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.Approve(ctx, manager, l.ID.String(), nil)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative insufficient balance blocks approval", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave(requesterID, leaveTypeID)

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		deps.balanceRepo.debitFn = func(ctx context.Context, employeeID, ltID string, year, days int) error {
			return leavebalanceerrors.ErrInsufficientBalance
		}

		_, err := deps.service.Approve(ctx, manager, l.ID.String(), nil)

		assert.ErrorIs(t, err, leavebalanceerrors.ErrInsufficientBalance)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	leaveTypeID := uuid.New()
	hr := leave.Actor{EmployeeID: uuid.New().String(), Role: authz.RoleHR}

	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	l := pendingLeave(requesterID, leaveTypeID)

	expectTx(t, deps.sqlMock, true)
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
		return l, nil
	}
	deps.balanceRepo.debitFn = func(ctx context.Context, employeeID, ltID string, year, days int) error {
		t.Fatal("reject must not touch the balance")
		return nil
	}
	var enqueued kafka.OutboxEvent
	deps.outboxRepo.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		enqueued = event
		return nil
	}

	comment := "coverage too thin that week"
	resp, err := deps.service.Reject(ctx, hr, l.ID.String(), &comment)

	assert.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Status)
	assert.NotNil(t, resp.ReviewerComment)
	assert.Equal(t, comment, *resp.ReviewerComment)
	assert.Equal(t, events.EventTypeLeaveRejected, enqueued.EventType)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	leaveTypeID := uuid.New()
	requester := leave.Actor{EmployeeID: requesterID.String(), Role: authz.RoleEmployee}

	t.Run("success by requester", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave(requesterID, leaveTypeID)

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		var enqueued kafka.OutboxEvent
		deps.outboxRepo.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			enqueued = event
			return nil
		}

		resp, err := deps.service.Cancel(ctx, requester, l.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
		assert.Equal(t, events.EventTypeLeaveCancelled, enqueued.EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative non requester", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave(requesterID, leaveTypeID)

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		other := leave.Actor{EmployeeID: uuid.New().String(), Role: authz.RoleManager}
		_, err := deps.service.Cancel(ctx, other, l.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrNotRequester)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave(requesterID, leaveTypeID)
		l.Status = leave.StatusApproved

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		deps.repo.cancelIfPendingFn = func(ctx context.Context, id string) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.Cancel(ctx, requester, l.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Update(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	leaveTypeID := uuid.New()
	requester := leave.Actor{EmployeeID: requesterID.String(), Role: authz.RoleEmployee}

	t.Run("success recomputes days", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave(requesterID, leaveTypeID)

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, rid string, s, e time.Time, excludeID *string) (bool, error) {
			assert.NotNil(t, excludeID)
			return false, nil
		}

		resp, err := deps.service.Update(ctx, requester, l.ID.String(), leave.UpdateLeaveRequest{
			LeaveTypeID: leaveTypeID.String(),
			StartDate:   "2025-04-01",
			EndDate:     "2025-04-03",
			Reason:      "moved the trip",
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, resp.DaysCount)
		assert.Equal(t, "2025-04-01", resp.StartDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative non requester", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave(requesterID, leaveTypeID)

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		other := leave.Actor{EmployeeID: uuid.New().String(), Role: authz.RoleEmployee}
		_, err := deps.service.Update(ctx, other, l.ID.String(), leave.UpdateLeaveRequest{
			LeaveTypeID: leaveTypeID.String(),
			StartDate:   "2025-04-01",
			EndDate:     "2025-04-03",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrNotRequester)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative no longer pending", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave(requesterID, leaveTypeID)

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}
		deps.repo.updateDetailsFn = func(ctx context.Context, l *leave.Leave) (int64, error) {
			return 0, nil
		}

		_, err := deps.service.Update(ctx, requester, l.ID.String(), leave.UpdateLeaveRequest{
			LeaveTypeID: leaveTypeID.String(),
			StartDate:   "2025-04-01",
			EndDate:     "2025-04-03",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Delete(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	leaveTypeID := uuid.New()

	t.Run("requester deletes own pending", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave(requesterID, leaveTypeID)

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		requester := leave.Actor{EmployeeID: requesterID.String(), Role: authz.RoleEmployee}
		err := deps.service.Delete(ctx, requester, l.ID.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative requester deletes approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave(requesterID, leaveTypeID)
		l.Status = leave.StatusApproved

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		requester := leave.Actor{EmployeeID: requesterID.String(), Role: authz.RoleEmployee}
		err := deps.service.Delete(ctx, requester, l.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("hr deletes any status", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave(requesterID, leaveTypeID)
		l.Status = leave.StatusApproved

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		hr := leave.Actor{EmployeeID: uuid.New().String(), Role: authz.RoleHR}
		err := deps.service.Delete(ctx, hr, l.ID.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unrelated employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l := pendingLeave(requesterID, leaveTypeID)

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.Leave, error) {
			return l, nil
		}

		other := leave.Actor{EmployeeID: uuid.New().String(), Role: authz.RoleEmployee}
		err := deps.service.Delete(ctx, other, l.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrDeleteNotAllowed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Visibility(t *testing.T) {
	ctx := context.Background()

	t.Run("get all passes actor through", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		actor := leave.Actor{EmployeeID: uuid.New().String(), Role: authz.RoleManager}
		deps.repo.findAllVisibleFn = func(ctx context.Context, got leave.Actor) ([]leave.Leave, error) {
			assert.Equal(t, actor, got)
			return []leave.Leave{*pendingLeave(uuid.New(), uuid.New())}, nil
		}

		resp, err := deps.service.GetAll(ctx, actor)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("negative out of scope reads as not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		actor := leave.Actor{EmployeeID: uuid.New().String(), Role: authz.RoleEmployee}
		_, err := deps.service.GetByID(ctx, actor, uuid.New().String())

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}
