package leave_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leavedesk/internal/authz"
	"leavedesk/internal/leave"
	leaveerrors "leavedesk/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveService struct {
	createFn  func(ctx context.Context, actor leave.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn  func(ctx context.Context, actor leave.Actor) ([]leave.LeaveResponse, error)
	getByIDFn func(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error)
	updateFn  func(ctx context.Context, actor leave.Actor, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error)
	approveFn func(ctx context.Context, actor leave.Actor, id string, comment *string) (leave.LeaveResponse, error)
	rejectFn  func(ctx context.Context, actor leave.Actor, id string, comment *string) (leave.LeaveResponse, error)
	cancelFn  func(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error)
	deleteFn  func(ctx context.Context, actor leave.Actor, id string) error
}

func (f *fakeLeaveService) Create(ctx context.Context, actor leave.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if f.createFn != nil {
		return f.createFn(ctx, actor, req)
	}
	return leave.LeaveResponse{}, nil
}

func (f *fakeLeaveService) GetAll(ctx context.Context, actor leave.Actor) ([]leave.LeaveResponse, error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx, actor)
	}
	return nil, nil
}

func (f *fakeLeaveService) GetByID(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, actor, id)
	}
	return leave.LeaveResponse{}, nil
}

func (f *fakeLeaveService) Update(ctx context.Context, actor leave.Actor, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, actor, id, req)
	}
	return leave.LeaveResponse{}, nil
}

func (f *fakeLeaveService) Approve(ctx context.Context, actor leave.Actor, id string, comment *string) (leave.LeaveResponse, error) {
	if f.approveFn != nil {
		return f.approveFn(ctx, actor, id, comment)
	}
	return leave.LeaveResponse{}, nil
}

func (f *fakeLeaveService) Reject(ctx context.Context, actor leave.Actor, id string, comment *string) (leave.LeaveResponse, error) {
	if f.rejectFn != nil {
		return f.rejectFn(ctx, actor, id, comment)
	}
	return leave.LeaveResponse{}, nil
}

func (f *fakeLeaveService) Cancel(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error) {
	if f.cancelFn != nil {
		return f.cancelFn(ctx, actor, id)
	}
	return leave.LeaveResponse{}, nil
}

func (f *fakeLeaveService) Delete(ctx context.Context, actor leave.Actor, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, actor, id)
	}
	return nil
}

func setupLeaveRouter(svc leave.Service, employeeID string, role authz.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("employee_id", employeeID)
		c.Set("role", string(role))
		c.Next()
	})

	handler := leave.NewHandler(svc)
	r.POST("/leaves", handler.Create)
	r.GET("/leaves/:id", handler.GetByID)
	r.POST("/leaves/:id/approve", handler.Approve)
	r.POST("/leaves/:id/cancel", handler.Cancel)
	return r
}

func TestLeaveHandler_Create(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("success passes actor from context", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, actor leave.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, employeeID, actor.EmployeeID)
				assert.Equal(t, authz.RoleEmployee, actor.Role)
				return leave.LeaveResponse{ID: uuid.New().String(), Status: leave.StatusPending, DaysCount: 5}, nil
			},
		}
		router := setupLeaveRouter(svc, employeeID, authz.RoleEmployee)

		body, _ := json.Marshal(leave.CreateLeaveRequest{
			LeaveTypeID: uuid.New().String(),
			StartDate:   "2025-02-01",
			EndDate:     "2025-02-05",
			Reason:      "family trip",
		})
		req := httptest.NewRequest(http.MethodPost, "/leaves", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), leave.StatusPending)
	})

	t.Run("negative invalid body", func(t *testing.T) {
		router := setupLeaveRouter(&fakeLeaveService{}, employeeID, authz.RoleEmployee)

		req := httptest.NewRequest(http.MethodPost, "/leaves", bytes.NewBufferString(`{"start_date": "2025-02-01"}`))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative overlap maps to 409", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, actor leave.Actor, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap
			},
		}
		router := setupLeaveRouter(svc, employeeID, authz.RoleEmployee)

		body, _ := json.Marshal(leave.CreateLeaveRequest{
			LeaveTypeID: uuid.New().String(),
			StartDate:   "2025-02-01",
			EndDate:     "2025-02-05",
		})
		req := httptest.NewRequest(http.MethodPost, "/leaves", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLeaveHandler_Approve(t *testing.T) {
	managerID := uuid.New().String()
	leaveID := uuid.New().String()

	t.Run("comment body is optional", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, actor leave.Actor, id string, comment *string) (leave.LeaveResponse, error) {
				assert.Equal(t, leaveID, id)
				assert.Nil(t, comment)
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}
		router := setupLeaveRouter(svc, managerID, authz.RoleManager)

		req := httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/approve", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), leave.StatusApproved)
	})

	t.Run("negative race loser maps to 409", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, actor leave.Actor, id string, comment *string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
			},
		}
		router := setupLeaveRouter(svc, managerID, authz.RoleManager)

		req := httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/approve", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("negative self review maps to 403", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, actor leave.Actor, id string, comment *string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrSelfReview
			},
		}
		router := setupLeaveRouter(svc, managerID, authz.RoleManager)

		req := httptest.NewRequest(http.MethodPost, "/leaves/"+leaveID+"/approve", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLeaveHandler_GetByID(t *testing.T) {
	employeeID := uuid.New().String()

	t.Run("negative out of scope is 404", func(t *testing.T) {
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, actor leave.Actor, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}
		router := setupLeaveRouter(svc, employeeID, authz.RoleEmployee)

		req := httptest.NewRequest(http.MethodGet, "/leaves/"+uuid.New().String(), nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
