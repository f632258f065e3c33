package student

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"campusMatching/domain"
	"campusMatching/pkg/logger"
	"campusMatching/pkg/utils"
)

// StudentRepository contract interface
type StudentRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Student, error)
	FindByEmail(ctx context.Context, email string) (domain.Student, error)
}

// SessionRepository contract interface
type SessionRepository interface {
	StoreToken(ctx context.Context, data domain.Session, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, studentID, token string) error
}

type FeedbackCounter interface {
	CountByStudent(ctx context.Context, studentID uint) (int64, error)
}

type TokenIssuer interface {
	GenerateJWT(userID, role string) (string, error)
	TTL() time.Duration
}

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type studentService struct {
	studentRepo  StudentRepository
	sessionRepo  SessionRepository
	feedbackRepo FeedbackCounter
	tokens       TokenIssuer
}

func NewStudentService(
	studentRepo StudentRepository,
	sessionRepo SessionRepository,
	feedbackRepo FeedbackCounter,
	tokens TokenIssuer,
) *studentService {
	return &studentService{
		studentRepo:  studentRepo,
		sessionRepo:  sessionRepo,
		feedbackRepo: feedbackRepo,
		tokens:       tokens,
	}
}

func (s *studentService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.Student, error) {
	student, err := s.studentRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Login for unknown email", "email", email)
			return "", domain.Student{}, domain.ErrInvalidCredentials
		}
		logger.Error("Failed to load student", err)
		return "", domain.Student{}, err
	}

	if !utils.CheckPassword(password, student.Password) {
		logger.Warn("Student password incorrect", "student_id", student.ID)
		return "", domain.Student{}, domain.ErrInvalidCredentials
	}

	role := student.Role
	if role == "" {
		role = RoleStudent
	}

	studentID := strconv.FormatUint(uint64(student.ID), 10)
	token, err := s.tokens.GenerateJWT(studentID, role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.Student{}, errors.New("failed to generate token")
	}

	now := time.Now()
	ttl := s.tokens.TTL()
	session := domain.Session{
		StudentID: studentID,
		Role:      role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := s.sessionRepo.StoreToken(ctx, session, ttl); err != nil {
		logger.Error("Failed to store session", err)
		return "", domain.Student{}, fmt.Errorf("store session: %w", err)
	}

	logger.Info("Student logged in", "student_id", student.ID)

	student.Password = ""
	return token, student, nil
}

func (s *studentService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.sessionRepo.ValidateToken(ctx, token)
}

func (s *studentService) Logout(ctx context.Context, studentID uint, token string) error {
	id := strconv.FormatUint(uint64(studentID), 10)
	if err := s.sessionRepo.DeleteToken(ctx, id, token); err != nil {
		logger.Error("Failed to delete session", err)
		return err
	}

	logger.Info("Student logged out", "student_id", studentID)
	return nil
}

// Profile returns the student with how much feedback they have given.
func (s *studentService) Profile(ctx context.Context, studentID uint) (domain.StudentProfile, error) {
	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return domain.StudentProfile{}, err
	}

	count, err := s.feedbackRepo.CountByStudent(ctx, studentID)
	if err != nil {
		return domain.StudentProfile{}, err
	}

	student.Password = ""
	return domain.StudentProfile{Student: student, FeedbackCount: count}, nil
}
