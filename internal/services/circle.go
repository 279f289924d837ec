package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/singleflight"

	"github.com/imbris22/Chore-Buddy/internal/metrics"
	"github.com/imbris22/Chore-Buddy/internal/models"
	"github.com/imbris22/Chore-Buddy/internal/repository"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrCircleNotFound  = errors.New("circle not found")
	ErrCircleNameTaken = errors.New("circle name is already taken")
	ErrMemberNotFound  = errors.New("member not found")
)

const (
	inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	inviteCodeLength   = 8
)

// CircleService runs a household circle: its members, chores, the weekly
// allocation and completion bookkeeping, and the shared grocery list.
type CircleService struct {
	circleRepo     repository.CircleRepository
	memberRepo     repository.MemberRepository
	choreRepo      repository.ChoreRepository
	allocationRepo repository.AllocationRepository
	completionRepo repository.CompletionRepository
	historyRepo    repository.HistoryRepository
	groceryRepo    repository.GroceryRepository
	recorder       metrics.Recorder

	now func() time.Time

	// allocationMutex serializes allocation runs; allocationGroup lets callers
	// racing on the same cycle share one result.
	allocationMutex sync.Mutex
	allocationGroup singleflight.Group
}

func NewCircleService(
	circleRepo repository.CircleRepository,
	memberRepo repository.MemberRepository,
	choreRepo repository.ChoreRepository,
	allocationRepo repository.AllocationRepository,
	completionRepo repository.CompletionRepository,
	historyRepo repository.HistoryRepository,
	groceryRepo repository.GroceryRepository,
	recorder metrics.Recorder,
	location *time.Location,
) *CircleService {
	if recorder == nil {
		recorder = metrics.NewNop()
	}
	if location == nil {
		location = time.Local
	}
	return &CircleService{
		circleRepo:     circleRepo,
		memberRepo:     memberRepo,
		choreRepo:      choreRepo,
		allocationRepo: allocationRepo,
		completionRepo: completionRepo,
		historyRepo:    historyRepo,
		groceryRepo:    groceryRepo,
		recorder:       recorder,
		now:            func() time.Time { return time.Now().In(location) },
	}
}

// SetClock replaces the service clock. The returned times decide which
// cycle every operation works on.
func (service *CircleService) SetClock(now func() time.Time) {
	service.now = now
}

func (service *CircleService) CurrentCycle() models.Cycle {
	return CurrentWeek(service.now())
}

func (service *CircleService) CreateCircle(ctx context.Context, name string) (models.Circle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Circle{}, fmt.Errorf("%w: circle name is required", ErrInvalidInput)
	}

	_, err := service.circleRepo.FindByName(ctx, name)
	if err == nil {
		return models.Circle{}, ErrCircleNameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return models.Circle{}, fmt.Errorf("checking circle name: %w", err)
	}

	code, err := gonanoid.Generate(inviteCodeAlphabet, inviteCodeLength)
	if err != nil {
		return models.Circle{}, fmt.Errorf("generating invite code: %w", err)
	}

	circle, err := service.circleRepo.Create(ctx, models.Circle{
		Name:       name,
		InviteCode: code,
		CreatedAt:  service.now(),
	})
	if err != nil {
		return models.Circle{}, err
	}

	slog.Info("created circle", "id", circle.ID, "name", circle.Name)
	return circle, nil
}

func (service *CircleService) JoinCircle(ctx context.Context, inviteCode string, name string, avatarRef string) (models.Circle, models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Circle{}, models.Member{}, fmt.Errorf("%w: member name is required", ErrInvalidInput)
	}

	circle, err := service.findCircleByCode(ctx, inviteCode)
	if err != nil {
		return models.Circle{}, models.Member{}, err
	}

	member, err := service.memberRepo.Create(ctx, models.Member{
		CircleID:  circle.ID,
		Name:      name,
		AvatarRef: strings.TrimSpace(avatarRef),
		JoinedAt:  service.now(),
	})
	if err != nil {
		return models.Circle{}, models.Member{}, err
	}

	slog.Info("member joined circle", "circle_id", circle.ID, "member_id", member.ID)
	return circle, member, nil
}

// LeaveCircle removes the member and their history. Fairness counters that
// mention them are left behind; the allocator ignores ids not on the roster.
func (service *CircleService) LeaveCircle(ctx context.Context, memberID string) error {
	err := service.memberRepo.Delete(ctx, memberID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMemberNotFound
	}
	return err
}

func (service *CircleService) Circle(ctx context.Context, circleID string) (models.Circle, error) {
	circle, err := service.circleRepo.FindByID(ctx, circleID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Circle{}, ErrCircleNotFound
	}
	return circle, err
}

func (service *CircleService) Roster(ctx context.Context, circleID string) ([]models.Member, error) {
	return service.memberRepo.FindByCircle(ctx, circleID)
}

func (service *CircleService) findCircleByCode(ctx context.Context, inviteCode string) (models.Circle, error) {
	circle, err := service.circleRepo.FindByInviteCode(ctx, strings.ToUpper(strings.TrimSpace(inviteCode)))
	if errors.Is(err, repository.ErrNotFound) {
		return models.Circle{}, ErrCircleNotFound
	}
	return circle, err
}

// findMember returns the member only if they belong to circleID.
func (service *CircleService) findMember(ctx context.Context, circleID string, memberID string) (models.Member, error) {
	member, err := service.memberRepo.FindByID(ctx, memberID)
	if errors.Is(err, repository.ErrNotFound) || (err == nil && member.CircleID != circleID) {
		return models.Member{}, ErrMemberNotFound
	}
	return member, err
}
