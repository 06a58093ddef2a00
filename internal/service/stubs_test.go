package service

import (
	"context"
	"io"

	"linknet/internal/models"
)

type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByIDsFn      func(context.Context, []uint) (map[uint]*models.User, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByIDs(ctx context.Context, ids []uint) (map[uint]*models.User, error) {
	return s.getByIDsFn(ctx, ids)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(context.Context, *models.User) error { return nil },
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		getByIDsFn: func(context.Context, []uint) (map[uint]*models.User, error) {
			return map[uint]*models.User{}, nil
		},
	}
}

type profileRepoStub struct {
	getByUserIDFn  func(context.Context, uint) (*models.Profile, error)
	getByUserIDsFn func(context.Context, []uint) (map[uint]*models.Profile, error)
	createFn       func(context.Context, *models.Profile) error
	updateFn       func(context.Context, *models.Profile) error
	searchFn       func(context.Context, string, int) ([]models.Profile, error)
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) GetByUserIDs(ctx context.Context, userIDs []uint) (map[uint]*models.Profile, error) {
	return s.getByUserIDsFn(ctx, userIDs)
}
func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) Search(ctx context.Context, query string, limit int) ([]models.Profile, error) {
	return s.searchFn(ctx, query, limit)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn: func(context.Context, uint) (*models.Profile, error) { return nil, nil },
		getByUserIDsFn: func(context.Context, []uint) (map[uint]*models.Profile, error) {
			return map[uint]*models.Profile{}, nil
		},
		createFn: func(context.Context, *models.Profile) error { return nil },
		updateFn: func(context.Context, *models.Profile) error { return nil },
		searchFn: func(context.Context, string, int) ([]models.Profile, error) { return nil, nil },
	}
}

type connRepoStub struct {
	createRequestFn      func(context.Context, uint, uint) (*models.Connection, error)
	getByIDFn            func(context.Context, uint) (*models.Connection, error)
	getByPairFn          func(context.Context, uint, uint) (*models.Connection, error)
	updateStatusFn       func(context.Context, uint, models.ConnectionStatus) error
	getAcceptedFn        func(context.Context, uint) ([]models.Connection, error)
	getPendingIncomingFn func(context.Context, uint) ([]models.Connection, error)
}

func (s *connRepoStub) CreateRequest(ctx context.Context, requesterID, recipientID uint) (*models.Connection, error) {
	return s.createRequestFn(ctx, requesterID, recipientID)
}
func (s *connRepoStub) GetByID(ctx context.Context, id uint) (*models.Connection, error) {
	return s.getByIDFn(ctx, id)
}
func (s *connRepoStub) GetByPair(ctx context.Context, userID1, userID2 uint) (*models.Connection, error) {
	return s.getByPairFn(ctx, userID1, userID2)
}
func (s *connRepoStub) UpdateStatus(ctx context.Context, connectionID uint, status models.ConnectionStatus) error {
	return s.updateStatusFn(ctx, connectionID, status)
}
func (s *connRepoStub) GetAccepted(ctx context.Context, userID uint) ([]models.Connection, error) {
	return s.getAcceptedFn(ctx, userID)
}
func (s *connRepoStub) GetPendingIncoming(ctx context.Context, userID uint) ([]models.Connection, error) {
	return s.getPendingIncomingFn(ctx, userID)
}

func noopConnRepo() *connRepoStub {
	return &connRepoStub{
		createRequestFn: func(_ context.Context, requesterID, recipientID uint) (*models.Connection, error) {
			return &models.Connection{
				RequesterID: requesterID,
				RecipientID: recipientID,
				Status:      models.ConnectionStatusPending,
			}, nil
		},
		getByIDFn:            func(context.Context, uint) (*models.Connection, error) { return &models.Connection{}, nil },
		getByPairFn:          func(context.Context, uint, uint) (*models.Connection, error) { return nil, nil },
		updateStatusFn:       func(context.Context, uint, models.ConnectionStatus) error { return nil },
		getAcceptedFn:        func(context.Context, uint) ([]models.Connection, error) { return nil, nil },
		getPendingIncomingFn: func(context.Context, uint) ([]models.Connection, error) { return nil, nil },
	}
}

type messageRepoStub struct {
	createFn        func(context.Context, *models.Message) error
	getBetweenFn    func(context.Context, uint, uint) ([]models.Message, error)
	getAllForUserFn func(context.Context, uint) ([]models.Message, error)
	markReadFn      func(context.Context, uint, uint) error
	countUnreadFn   func(context.Context, uint) (int64, error)
}

func (s *messageRepoStub) Create(ctx context.Context, msg *models.Message) error {
	return s.createFn(ctx, msg)
}
func (s *messageRepoStub) GetBetween(ctx context.Context, userID, partnerID uint) ([]models.Message, error) {
	return s.getBetweenFn(ctx, userID, partnerID)
}
func (s *messageRepoStub) GetAllForUser(ctx context.Context, userID uint) ([]models.Message, error) {
	return s.getAllForUserFn(ctx, userID)
}
func (s *messageRepoStub) MarkRead(ctx context.Context, recipientID, senderID uint) error {
	return s.markReadFn(ctx, recipientID, senderID)
}
func (s *messageRepoStub) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	return s.countUnreadFn(ctx, recipientID)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:        func(context.Context, *models.Message) error { return nil },
		getBetweenFn:    func(context.Context, uint, uint) ([]models.Message, error) { return nil, nil },
		getAllForUserFn: func(context.Context, uint) ([]models.Message, error) { return nil, nil },
		markReadFn:      func(context.Context, uint, uint) error { return nil },
		countUnreadFn:   func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type postRepoStub struct {
	createFn          func(context.Context, *models.Post) error
	getByIDFn         func(context.Context, uint) (*models.Post, error)
	listFn            func(context.Context, int) ([]models.Post, error)
	getLikedPostIDsFn func(context.Context, uint, []uint) (map[uint]bool, error)
	toggleLikeFn      func(context.Context, uint, uint) (bool, error)
	addCommentFn      func(context.Context, *models.Comment) error
	listCommentsFn    func(context.Context, uint) ([]models.Comment, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit int) ([]models.Post, error) {
	return s.listFn(ctx, limit)
}
func (s *postRepoStub) GetLikedPostIDs(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	return s.getLikedPostIDsFn(ctx, userID, postIDs)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, postID, userID uint) (bool, error) {
	return s.toggleLikeFn(ctx, postID, userID)
}
func (s *postRepoStub) AddComment(ctx context.Context, comment *models.Comment) error {
	return s.addCommentFn(ctx, comment)
}
func (s *postRepoStub) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listCommentsFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(context.Context, *models.Post) error { return nil },
		getByIDFn: func(context.Context, uint) (*models.Post, error) { return &models.Post{}, nil },
		listFn:    func(context.Context, int) ([]models.Post, error) { return nil, nil },
		getLikedPostIDsFn: func(context.Context, uint, []uint) (map[uint]bool, error) {
			return map[uint]bool{}, nil
		},
		toggleLikeFn:   func(context.Context, uint, uint) (bool, error) { return true, nil },
		addCommentFn:   func(context.Context, *models.Comment) error { return nil },
		listCommentsFn: func(context.Context, uint) ([]models.Comment, error) { return nil, nil },
	}
}

// fakeBlob resolves refs against a fixed prefix without touching disk.
type fakeBlob struct{}

func (fakeBlob) Save(_ context.Context, ext string, _ io.Reader) (string, error) {
	return "ref" + ext, nil
}
func (fakeBlob) URL(ref string) string {
	if ref == "" {
		return ""
	}
	return "/media/" + ref
}

// resolverStub answers IsConnected with a fixed result.
type resolverStub struct {
	connected bool
	err       error
}

func (r resolverStub) IsConnected(context.Context, uint, uint) (bool, error) {
	return r.connected, r.err
}
