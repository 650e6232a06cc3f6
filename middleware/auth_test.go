package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"drivebook/models"
	"drivebook/utils"
)

// Mock repositories for testing.

type mockInstructorRepo struct {
	getByIDFunc func(id string) (*models.Instructor, error)
}

func (m *mockInstructorRepo) GetByID(id string) (*models.Instructor, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(id)
	}
	return nil, nil
}

func (m *mockInstructorRepo) GetByEmail(email string) (*models.Instructor, error) { return nil, nil }
func (m *mockInstructorRepo) Create(instructor *models.Instructor) error          { return nil }
func (m *mockInstructorRepo) Update(instructor *models.Instructor) error          { return nil }
func (m *mockInstructorRepo) Delete(id string) error                              { return nil }
func (m *mockInstructorRepo) UpdateWeeklyAvailability(id string, weekly []models.DayAvailability) error {
	return nil
}
func (m *mockInstructorRepo) UpdateCancellationPolicy(id string, policy models.CancellationPolicy) error {
	return nil
}

type mockLearnerRepo struct {
	getByIDFunc func(id string) (*models.Learner, error)
}

func (m *mockLearnerRepo) GetByID(id string) (*models.Learner, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(id)
	}
	return nil, nil
}

func (m *mockLearnerRepo) GetByEmail(email string) (*models.Learner, error) { return nil, nil }
func (m *mockLearnerRepo) Create(learner *models.Learner) error             { return nil }
func (m *mockLearnerRepo) Update(learner *models.Learner) error             { return nil }
func (m *mockLearnerRepo) Delete(id string) error                           { return nil }
func (m *mockLearnerRepo) AdjustBalance(id string, delta float64) (*models.Learner, error) {
	return nil, nil
}

func instructorRouter(repo *mockInstructorRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthInstructorMiddleware(repo), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"instructorId": c.GetString("instructorID")})
	})
	return r
}

func perform(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthInstructorMiddleware(t *testing.T) {
	token, err := utils.GenerateToken("inst-1", "i@example.com", "instructor", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	t.Run("accepts the current session token", func(t *testing.T) {
		repo := &mockInstructorRepo{
			getByIDFunc: func(id string) (*models.Instructor, error) {
				return &models.Instructor{ID: id, AuthToken: utils.HashToken(token)}, nil
			},
		}
		w := perform(instructorRouter(repo), token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects a token superseded by a newer login", func(t *testing.T) {
		newerToken, err := utils.GenerateToken("inst-1", "i@example.com", "instructor", 2*time.Hour)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		repo := &mockInstructorRepo{
			getByIDFunc: func(id string) (*models.Instructor, error) {
				return &models.Instructor{ID: id, AuthToken: utils.HashToken(newerToken)}, nil
			},
		}
		w := perform(instructorRouter(repo), token)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for a superseded token, got %d", w.Code)
		}
	})

	t.Run("rejects when no session hash is stored", func(t *testing.T) {
		repo := &mockInstructorRepo{
			getByIDFunc: func(id string) (*models.Instructor, error) {
				return &models.Instructor{ID: id}, nil
			},
		}
		w := perform(instructorRouter(repo), token)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without a stored session, got %d", w.Code)
		}
	})

	t.Run("rejects a learner token", func(t *testing.T) {
		learnerToken, err := utils.GenerateToken("learner-1", "l@example.com", "learner", time.Hour)
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		w := perform(instructorRouter(&mockInstructorRepo{}), learnerToken)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for the wrong role, got %d", w.Code)
		}
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		w := perform(instructorRouter(&mockInstructorRepo{}), "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 without a token, got %d", w.Code)
		}
	})
}

func TestJWTAuthLearnerMiddleware(t *testing.T) {
	token, err := utils.GenerateToken("learner-1", "l@example.com", "learner", time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	gin.SetMode(gin.TestMode)
	repo := &mockLearnerRepo{
		getByIDFunc: func(id string) (*models.Learner, error) {
			return &models.Learner{ID: id, AuthToken: utils.HashToken(token)}, nil
		},
	}
	r := gin.New()
	r.GET("/protected", JWTAuthLearnerMiddleware(repo), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"learnerId": c.GetString("learnerID")})
	})

	w := perform(r, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
