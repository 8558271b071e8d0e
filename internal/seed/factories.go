package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"seedbed/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	namePrefixes = []string{
		"씨앗", "새싹", "정원", "텃밭", "화분", "모종", "열매", "꽃잎",
		"이슬", "햇살", "바람", "구름", "별빛", "노을", "들판", "숲속",
	}

	postTitles = []string{
		"오늘 심은 생각 하나",
		"작은 습관을 키우는 중이에요",
		"요즘 읽고 있는 책 이야기",
		"퇴근길에 떠오른 아이디어",
		"처음 도전해본 일의 기록",
		"천천히 자라는 계획",
		"주말 텃밭 일지",
		"실패에서 배운 것들",
		"같이 고민해주실 분 있나요",
		"한 달 회고를 남겨봅니다",
	}

	postBodies = []string{
		"처음에는 막막했는데 하루하루 조금씩 해보니 어느새 습관이 되었어요. 비슷한 경험 있으신 분들의 이야기가 궁금합니다.",
		"계획만 세우다가 드디어 첫 걸음을 뗐습니다. 작게 시작하는 게 제일 어렵다는 걸 다시 느꼈어요.",
		"중간에 포기하고 싶은 순간이 많았지만 기록을 남기니 버틸 수 있었습니다. 오늘은 그 기록을 공유해봅니다.",
		"결과보다 과정이 남는다는 말을 요즘 실감하고 있어요. 여러분은 어떤 과정을 지나고 계신가요?",
		"혼자 하던 고민을 여기 심어봅니다. 물 주듯이 의견 한 줄씩 부탁드려요.",
	}

	commentBodies = []string{
		"응원합니다! 저도 비슷한 고민을 하고 있었어요.",
		"좋은 글 잘 읽었습니다. 다음 이야기도 기대할게요.",
		"이 부분 정말 공감돼요. 저라면 조금 다르게 해볼 것 같아요.",
		"덕분에 오늘 하나 배워갑니다.",
		"꾸준함이 답이네요. 함께 해봐요!",
	}

	gardenerBodies = []string{
		"이 씨앗에서 벌써 좋은 향기가 나네요. 작게 시작한 만큼 오래 갈 거예요!",
		"기록을 남기는 습관 자체가 멋진 성장이에요. 다음 물주기도 기대할게요.",
		"고민을 심어주셔서 고마워요. 댓글들이 좋은 거름이 되어줄 거예요.",
	}
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the Seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	seq  int
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	f.seq++
	user := &models.User{
		// Names follow the validation rules: 2 to 10 runes, unique.
		Name:         fmt.Sprintf("%s%d", namePrefixes[f.rng.Intn(len(namePrefixes))], 100+f.seq),
		Email:        fmt.Sprintf("seed%d.%s", f.seq, gofakeit.Email()),
		ProfileImage: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	if f.opts.SkipBcrypt {
		user.PasswordHash = "plaintext:password123"
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user %s: %w", user.Name, err)
	}
	return user, nil
}

// BuildPost constructs a post without persisting it. Useful for batching.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:     postTitles[f.rng.Intn(len(postTitles))],
		Content:   postBodies[f.rng.Intn(len(postBodies))],
		UserID:    author.ID,
		ViewCount: f.rng.Intn(200),
		CreatedAt: f.spreadTime(),
	}
	if f.rng.Intn(3) == 0 {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	if err := f.db.Create(&posts).Error; err != nil {
		return fmt.Errorf("create %d posts: %w", len(posts), err)
	}
	log.Printf("batch inserted %d posts", len(posts))
	return nil
}

// CreateComment persists a comment by the given author on the given post.
func (f *Factory) CreateComment(author *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		Content:   commentBodies[f.rng.Intn(len(commentBodies))],
		PostID:    post.ID,
		UserID:    author.ID,
		CreatedAt: f.spreadTime(),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// CreateGardenerComment persists a comment carrying the AI gardener marker.
func (f *Factory) CreateGardenerComment(author *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		Content:   models.AICommentPrefix + gardenerBodies[f.rng.Intn(len(gardenerBodies))],
		PostID:    post.ID,
		UserID:    author.ID,
		CreatedAt: f.spreadTime(),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create gardener comment: %w", err)
	}
	return comment, nil
}

// CreateLike persists a like. Duplicate pairs are skipped silently so callers
// can retry pairs without tracking state.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	var existing int64
	f.db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", user.ID, post.ID).
		Count(&existing)
	if existing > 0 {
		return nil
	}
	like := &models.Like{UserID: user.ID, PostID: post.ID}
	if err := f.db.Create(like).Error; err != nil {
		return fmt.Errorf("create like: %w", err)
	}
	return nil
}

func (f *Factory) spreadTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rng.Intn(24))*time.Hour +
		time.Duration(f.rng.Intn(60))*time.Minute
	return time.Now().Add(-back)
}
