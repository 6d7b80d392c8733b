package service

import (
	"context"

	"devconnector/internal/models"

	"gorm.io/gorm"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	deleteAccountFn func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) DeleteAccount(ctx context.Context, userID uint) error {
	return s.deleteAccountFn(ctx, userID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return nil, gorm.ErrRecordNotFound },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteAccountFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByUserIDFn      func(context.Context, uint) (*models.Profile, error)
	getByHandleFn      func(context.Context, string) (*models.Profile, error)
	handleTakenFn      func(context.Context, string, uint) (bool, error)
	listFn             func(context.Context) ([]*models.Profile, error)
	createFn           func(context.Context, *models.Profile) error
	updateFn           func(context.Context, *models.Profile) error
	addExperienceFn    func(context.Context, *models.Experience) error
	removeExperienceFn func(context.Context, uint, uint) (bool, error)
	addEducationFn     func(context.Context, *models.Education) error
	removeEducationFn  func(context.Context, uint, uint) (bool, error)
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	return s.getByHandleFn(ctx, handle)
}
func (s *profileRepoStub) HandleTaken(ctx context.Context, handle string, exceptUserID uint) (bool, error) {
	return s.handleTakenFn(ctx, handle, exceptUserID)
}
func (s *profileRepoStub) List(ctx context.Context) ([]*models.Profile, error) {
	return s.listFn(ctx)
}
func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) AddExperience(ctx context.Context, exp *models.Experience) error {
	return s.addExperienceFn(ctx, exp)
}
func (s *profileRepoStub) RemoveExperience(ctx context.Context, profileID, expID uint) (bool, error) {
	return s.removeExperienceFn(ctx, profileID, expID)
}
func (s *profileRepoStub) AddEducation(ctx context.Context, edu *models.Education) error {
	return s.addEducationFn(ctx, edu)
}
func (s *profileRepoStub) RemoveEducation(ctx context.Context, profileID, eduID uint) (bool, error) {
	return s.removeEducationFn(ctx, profileID, eduID)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn:      func(_ context.Context, _ uint) (*models.Profile, error) { return nil, gorm.ErrRecordNotFound },
		getByHandleFn:      func(_ context.Context, _ string) (*models.Profile, error) { return nil, gorm.ErrRecordNotFound },
		handleTakenFn:      func(_ context.Context, _ string, _ uint) (bool, error) { return false, nil },
		listFn:             func(_ context.Context) ([]*models.Profile, error) { return nil, nil },
		createFn:           func(_ context.Context, _ *models.Profile) error { return nil },
		updateFn:           func(_ context.Context, _ *models.Profile) error { return nil },
		addExperienceFn:    func(_ context.Context, _ *models.Experience) error { return nil },
		removeExperienceFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		addEducationFn:     func(_ context.Context, _ *models.Education) error { return nil },
		removeEducationFn:  func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	listFn          func(context.Context) ([]*models.Post, error)
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	createFn        func(context.Context, *models.Post) error
	deleteFn        func(context.Context, uint) error
	likeFn          func(context.Context, uint, uint) (bool, error)
	unlikeFn        func(context.Context, uint, uint) (bool, error)
	addCommentFn    func(context.Context, *models.Comment) error
	removeCommentFn func(context.Context, uint, uint) (bool, error)
}

func (s *postRepoStub) List(ctx context.Context) ([]*models.Post, error) {
	return s.listFn(ctx)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Like(ctx context.Context, postID, userID uint) (bool, error) {
	return s.likeFn(ctx, postID, userID)
}
func (s *postRepoStub) Unlike(ctx context.Context, postID, userID uint) (bool, error) {
	return s.unlikeFn(ctx, postID, userID)
}
func (s *postRepoStub) AddComment(ctx context.Context, comment *models.Comment) error {
	return s.addCommentFn(ctx, comment)
}
func (s *postRepoStub) RemoveComment(ctx context.Context, postID, commentID uint) (bool, error) {
	return s.removeCommentFn(ctx, postID, commentID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		listFn:          func(_ context.Context) ([]*models.Post, error) { return nil, nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		createFn:        func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		likeFn:          func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unlikeFn:        func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		addCommentFn:    func(_ context.Context, _ *models.Comment) error { return nil },
		removeCommentFn: func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
	}
}

// appErr asserts err is an AppError and returns it.
func appErr(err error) *models.AppError {
	ae, _ := err.(*models.AppError)
	return ae
}

var errNotFound = gorm.ErrRecordNotFound
