package proposal

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/jane-devs/barter-platform/internal/models"
	"github.com/jane-devs/barter-platform/internal/storage"
)

var errStorageBroken = errors.New("storage broken")

// memStore – хранилище в памяти для тестов движка. WithinTx работает
// на копии данных: при ошибке изменения отбрасываются целиком, как в
// настоящей транзакции.
type memStore struct {
	ads       map[uuid.UUID]models.Ad
	proposals map[uuid.UUID]models.ExchangeProposal
	users     map[uuid.UUID]models.User

	// Счетчик вызовов SetAdExchanged и номер вызова, на котором
	// нужно сымитировать сбой хранилища (0 – без сбоев)
	setExchangedCalls  int
	failSetExchangedOn int
}

func newMemStore() *memStore {
	return &memStore{
		ads:       make(map[uuid.UUID]models.Ad),
		proposals: make(map[uuid.UUID]models.ExchangeProposal),
		users:     make(map[uuid.UUID]models.User),
	}
}

func (m *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range m.ads {
		c.ads[k] = v
	}
	for k, v := range m.proposals {
		c.proposals[k] = v
	}
	for k, v := range m.users {
		c.users[k] = v
	}
	c.setExchangedCalls = m.setExchangedCalls
	c.failSetExchangedOn = m.failSetExchangedOn
	return c
}

func (m *memStore) WithinTx(ctx context.Context, fn func(storage.Store) error) error {
	tx := m.clone()
	if err := fn(tx); err != nil {
		return err
	}
	m.ads = tx.ads
	m.proposals = tx.proposals
	m.users = tx.users
	m.setExchangedCalls = tx.setExchangedCalls
	return nil
}

func (m *memStore) GetAd(ctx context.Context, id uuid.UUID) (models.Ad, error) {
	ad, ok := m.ads[id]
	if !ok {
		return models.Ad{}, models.ErrAdNotFound
	}
	return ad, nil
}

func (m *memStore) GetAdForUpdate(ctx context.Context, id uuid.UUID) (models.Ad, error) {
	return m.GetAd(ctx, id)
}

func (m *memStore) CreateAd(ctx context.Context, ad models.Ad) error {
	m.ads[ad.ID] = ad
	return nil
}

func (m *memStore) UpdateAd(ctx context.Context, ad models.Ad) error {
	if _, ok := m.ads[ad.ID]; !ok {
		return models.ErrAdNotFound
	}
	m.ads[ad.ID] = ad
	return nil
}

func (m *memStore) DeleteAd(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.ads[id]; !ok {
		return models.ErrAdNotFound
	}
	delete(m.ads, id)
	return nil
}

func (m *memStore) SetAdExchanged(ctx context.Context, id uuid.UUID, exchanged bool) error {
	m.setExchangedCalls++
	if m.failSetExchangedOn != 0 && m.setExchangedCalls >= m.failSetExchangedOn {
		return errStorageBroken
	}
	ad, ok := m.ads[id]
	if !ok {
		return models.ErrAdNotFound
	}
	ad.IsExchanged = exchanged
	m.ads[id] = ad
	return nil
}

func (m *memStore) ListAds(ctx context.Context, f storage.AdFilter) ([]models.Ad, int, error) {
	var ads []models.Ad
	for _, ad := range m.ads {
		ads = append(ads, ad)
	}
	return ads, len(ads), nil
}

func (m *memStore) GetProposal(ctx context.Context, id uuid.UUID) (models.ExchangeProposal, error) {
	p, ok := m.proposals[id]
	if !ok {
		return models.ExchangeProposal{}, models.ErrProposalNotFound
	}
	return p, nil
}

func (m *memStore) GetProposalForUpdate(ctx context.Context, id uuid.UUID) (models.ExchangeProposal, error) {
	return m.GetProposal(ctx, id)
}

func (m *memStore) CreateProposal(ctx context.Context, p models.ExchangeProposal) error {
	m.proposals[p.ID] = p
	return nil
}

func (m *memStore) UpdateProposalStatus(ctx context.Context, id uuid.UUID, status models.ProposalStatus) error {
	p, ok := m.proposals[id]
	if !ok {
		return models.ErrProposalNotFound
	}
	p.Status = status
	m.proposals[id] = p
	return nil
}

func (m *memStore) ListProposals(ctx context.Context, f storage.ProposalFilter) ([]models.ExchangeProposal, int, error) {
	var proposals []models.ExchangeProposal
	for _, p := range m.proposals {
		proposals = append(proposals, p)
	}
	return proposals, len(proposals), nil
}

func (m *memStore) HasPendingProposal(ctx context.Context, adSenderID, adReceiverID uuid.UUID) (bool, error) {
	for _, p := range m.proposals {
		if p.AdSenderID == adSenderID && p.AdReceiverID == adReceiverID && p.Status == models.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CreateUser(ctx context.Context, user models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memStore) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return models.User{}, models.ErrUserNotFound
	}
	return user, nil
}

func (m *memStore) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

func (m *memStore) UpsertTelegramUser(ctx context.Context, user models.User) (models.User, error) {
	user.ID = uuid.New()
	m.users[user.ID] = user
	return user, nil
}

// testEnv – два пользователя с объявлением у каждого
type testEnv struct {
	store  *memStore
	engine *Engine
	userA  uuid.UUID
	userB  uuid.UUID
	adA    uuid.UUID // мебель, б/у, принадлежит A
	adB    uuid.UUID // электроника, новая, принадлежит B
}

func newTestEnv() *testEnv {
	store := newMemStore()
	env := &testEnv{
		store:  store,
		engine: NewEngine(store),
		userA:  uuid.New(),
		userB:  uuid.New(),
		adA:    uuid.New(),
		adB:    uuid.New(),
	}
	store.ads[env.adA] = models.Ad{
		ID:        env.adA,
		UserID:    env.userA,
		Title:     "Диван",
		Category:  models.CategoryFurniture,
		Condition: models.ConditionUsed,
	}
	store.ads[env.adB] = models.Ad{
		ID:        env.adB,
		UserID:    env.userB,
		Title:     "Ноутбук",
		Category:  models.CategoryElectronics,
		Condition: models.ConditionNew,
	}
	return env
}

// pendingProposal создает предложение B -> A напрямую в хранилище
func (env *testEnv) pendingProposal() models.ExchangeProposal {
	p := models.ExchangeProposal{
		ID:           uuid.New(),
		AdSenderID:   env.adB,
		AdReceiverID: env.adA,
		Status:       models.StatusPending,
	}
	env.store.proposals[p.ID] = p
	return p
}

func TestCreateProposal(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		env := newTestEnv()
		created, err := env.engine.Create(ctx, env.userB, CreateInput{
			AdReceiverID: env.adA,
			AdSenderID:   env.adB,
			Comment:      "Меняю ноутбук на диван",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.Status != models.StatusPending {
			t.Errorf("status = %q, want pending", created.Status)
		}
		if _, ok := env.store.proposals[created.ID]; !ok {
			t.Error("proposal not persisted")
		}
	})

	t.Run("SelfProposal", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.engine.Create(ctx, env.userA, CreateInput{
			AdReceiverID: env.adA,
			AdSenderID:   env.adA,
		})
		if !errors.Is(err, models.ErrSelfProposal) {
			t.Errorf("err = %v, want ErrSelfProposal", err)
		}
		if len(env.store.proposals) != 0 {
			t.Error("proposal persisted on failure")
		}
	})

	t.Run("ReceiverNotFound", func(t *testing.T) {
		env := newTestEnv()
		_, err := env.engine.Create(ctx, env.userB, CreateInput{
			AdReceiverID: uuid.New(),
			AdSenderID:   env.adB,
		})
		if !errors.Is(err, models.ErrAdNotFound) {
			t.Errorf("err = %v, want ErrAdNotFound", err)
		}
	})

	t.Run("ReceiverAlreadyExchanged", func(t *testing.T) {
		env := newTestEnv()
		ad := env.store.ads[env.adA]
		ad.IsExchanged = true
		env.store.ads[env.adA] = ad

		_, err := env.engine.Create(ctx, env.userB, CreateInput{
			AdReceiverID: env.adA,
			AdSenderID:   env.adB,
		})
		if !errors.Is(err, models.ErrAdAlreadyExchanged) {
			t.Errorf("err = %v, want ErrAdAlreadyExchanged", err)
		}
		if len(env.store.proposals) != 0 {
			t.Error("proposal persisted on failure")
		}
	})

	t.Run("SenderNotOwned", func(t *testing.T) {
		env := newTestEnv()
		stranger := uuid.New()
		_, err := env.engine.Create(ctx, stranger, CreateInput{
			AdReceiverID: env.adA,
			AdSenderID:   env.adB,
		})
		if !errors.Is(err, models.ErrNotAdOwner) {
			t.Errorf("err = %v, want ErrNotAdOwner", err)
		}
	})

	t.Run("SenderAlreadyExchanged", func(t *testing.T) {
		env := newTestEnv()
		ad := env.store.ads[env.adB]
		ad.IsExchanged = true
		env.store.ads[env.adB] = ad

		_, err := env.engine.Create(ctx, env.userB, CreateInput{
			AdReceiverID: env.adA,
			AdSenderID:   env.adB,
		})
		if !errors.Is(err, models.ErrAdAlreadyExchanged) {
			t.Errorf("err = %v, want ErrAdAlreadyExchanged", err)
		}
	})

	t.Run("DuplicatePending", func(t *testing.T) {
		env := newTestEnv()
		env.pendingProposal()

		_, err := env.engine.Create(ctx, env.userB, CreateInput{
			AdReceiverID: env.adA,
			AdSenderID:   env.adB,
		})
		if !errors.Is(err, models.ErrDuplicateProposal) {
			t.Errorf("err = %v, want ErrDuplicateProposal", err)
		}
		if len(env.store.proposals) != 1 {
			t.Errorf("proposals = %d, want 1", len(env.store.proposals))
		}
	})
}

func TestHandleActionAccept(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	p := env.pendingProposal()

	handled, err := env.engine.HandleAction(ctx, p.ID, ActionAccept, env.userA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handled.Status != models.StatusAccepted {
		t.Errorf("status = %q, want accepted", handled.Status)
	}
	if !env.store.ads[env.adA].IsExchanged {
		t.Error("receiver ad not marked exchanged")
	}
	if !env.store.ads[env.adB].IsExchanged {
		t.Error("sender ad not marked exchanged")
	}
	if env.store.proposals[p.ID].Status != models.StatusAccepted {
		t.Errorf("stored status = %q, want accepted", env.store.proposals[p.ID].Status)
	}
}

func TestHandleActionReject(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	p := env.pendingProposal()

	handled, err := env.engine.HandleAction(ctx, p.ID, ActionReject, env.userA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handled.Status != models.StatusRejected {
		t.Errorf("status = %q, want rejected", handled.Status)
	}
	// Отказ не трогает объявления
	if env.store.ads[env.adA].IsExchanged || env.store.ads[env.adB].IsExchanged {
		t.Error("reject must not mark ads exchanged")
	}
}

func TestHandleActionTerminalIsFinal(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	p := env.pendingProposal()

	if _, err := env.engine.HandleAction(ctx, p.ID, ActionAccept, env.userA); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, action := range []Action{ActionAccept, ActionReject, Action("cancel")} {
		_, err := env.engine.HandleAction(ctx, p.ID, action, env.userA)
		if !errors.Is(err, models.ErrAlreadyHandled) {
			t.Errorf("action %q: err = %v, want ErrAlreadyHandled", action, err)
		}
	}

	// Состояние не изменилось
	if env.store.proposals[p.ID].Status != models.StatusAccepted {
		t.Errorf("status = %q, want accepted", env.store.proposals[p.ID].Status)
	}
	if !env.store.ads[env.adA].IsExchanged || !env.store.ads[env.adB].IsExchanged {
		t.Error("ads must stay exchanged")
	}
}

func TestHandleActionForbidden(t *testing.T) {
	ctx := context.Background()

	// Отправитель и посторонний не могут обработать предложение,
	// ни в статусе pending, ни после обработки
	for _, terminal := range []bool{false, true} {
		env := newTestEnv()
		p := env.pendingProposal()
		if terminal {
			if _, err := env.engine.HandleAction(ctx, p.ID, ActionReject, env.userA); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		wantStatus := env.store.proposals[p.ID].Status

		for _, user := range []uuid.UUID{env.userB, uuid.New()} {
			_, err := env.engine.HandleAction(ctx, p.ID, ActionAccept, user)
			if !errors.Is(err, models.ErrNoPermission) {
				t.Errorf("terminal=%v: err = %v, want ErrNoPermission", terminal, err)
			}
		}

		if env.store.proposals[p.ID].Status != wantStatus {
			t.Errorf("status changed by forbidden call: %q", env.store.proposals[p.ID].Status)
		}
		if env.store.ads[env.adA].IsExchanged || env.store.ads[env.adB].IsExchanged {
			t.Error("ads mutated by forbidden call")
		}
	}
}

func TestHandleActionInvalid(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	p := env.pendingProposal()

	_, err := env.engine.HandleAction(ctx, p.ID, Action("cancel"), env.userA)
	if !errors.Is(err, models.ErrInvalidAction) {
		t.Errorf("err = %v, want ErrInvalidAction", err)
	}
	if env.store.proposals[p.ID].Status != models.StatusPending {
		t.Errorf("status = %q, want pending", env.store.proposals[p.ID].Status)
	}
}

func TestHandleActionNotFound(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	_, err := env.engine.HandleAction(ctx, uuid.New(), ActionAccept, env.userA)
	if !errors.Is(err, models.ErrProposalNotFound) {
		t.Errorf("err = %v, want ErrProposalNotFound", err)
	}
}

// Сбой хранилища на середине принятия не должен оставлять частичных
// записей: оба объявления и статус остаются нетронутыми
func TestAcceptIsAtomic(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	p := env.pendingProposal()
	env.store.failSetExchangedOn = 2

	_, err := env.engine.HandleAction(ctx, p.ID, ActionAccept, env.userA)
	if !errors.Is(err, errStorageBroken) {
		t.Fatalf("err = %v, want errStorageBroken", err)
	}

	if env.store.proposals[p.ID].Status != models.StatusPending {
		t.Errorf("status = %q, want pending after rollback", env.store.proposals[p.ID].Status)
	}
	if env.store.ads[env.adA].IsExchanged || env.store.ads[env.adB].IsExchanged {
		t.Error("ads mutated despite rollback")
	}
}

// Сценарий целиком: B предлагает обмен, A принимает, повторная
// обработка отклоняется
func TestExchangeScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	created, err := env.engine.Create(ctx, env.userB, CreateInput{
		AdReceiverID: env.adA,
		AdSenderID:   env.adB,
		Comment:      "Поменяемся?",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != models.StatusPending {
		t.Fatalf("status = %q, want pending", created.Status)
	}

	handled, err := env.engine.HandleAction(ctx, created.ID, ActionAccept, env.userA)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if handled.Status != models.StatusAccepted {
		t.Errorf("status = %q, want accepted", handled.Status)
	}
	if !env.store.ads[env.adA].IsExchanged || !env.store.ads[env.adB].IsExchanged {
		t.Error("both ads must be exchanged after accept")
	}

	_, err = env.engine.HandleAction(ctx, created.ID, ActionReject, env.userA)
	if !errors.Is(err, models.ErrAlreadyHandled) {
		t.Errorf("err = %v, want ErrAlreadyHandled", err)
	}
	if env.store.proposals[created.ID].Status != models.StatusAccepted {
		t.Error("terminal status must not change")
	}
}
