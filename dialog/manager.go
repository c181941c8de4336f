package dialog

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"barkod_bot/storage"
)

// Catalog — контракт хранилища товаров, который нужен движку диалога
type Catalog interface {
	ByBarcode(ctx context.Context, barcode int64) (*storage.Product, error)
	Add(ctx context.Context, p storage.Product) error
	UpdateWeightPrice(ctx context.Context, barcode int64, weight, price, finalPrice *float64) error
	UpdateName(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, barcode int64) error
	List(ctx context.Context, limit, offset int) ([]storage.Product, error)
	All(ctx context.Context) ([]storage.Product, error)
	Count(ctx context.Context) (int, error)
	Stats(ctx context.Context) (storage.Stats, error)
}

// Basket — контракт корзинки
type Basket interface {
	Items(ctx context.Context) ([]storage.BasketItem, error)
	ByID(ctx context.Context, id int64) (*storage.BasketItem, error)
	ByBarcode(ctx context.Context, barcode int64) (*storage.BasketItem, error)
	Upsert(ctx context.Context, it storage.BasketItem) error
	SetShtuk(ctx context.Context, id int64, shtuk int) error
	Remove(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}

// Rates — курс доллара
type Rates interface {
	Rate(ctx context.Context) (float64, error)
	SetRate(ctx context.Context, rate float64) error
}

// Lookup — внешний справочник товаров. Best-effort: промах — это
// (nil, nil), ошибкой считается только отказ транспорта.
type Lookup interface {
	Lookup(ctx context.Context, barcode int64) (*storage.Product, error)
}

// handlerFunc обрабатывает событие в конкретном состоянии и возвращает
// ответ и следующее состояние. Ненулевая ошибка означает отказ внешней
// зависимости: состояние не меняется, оператор может повторить ввод.
type handlerFunc func(ctx context.Context, s *Session, ev Event) (Reply, State, error)

// Manager — диспетчер диалога: по (сессия, событие) выбирает обработчик
// и фиксирует новое состояние
type Manager struct {
	sessions SessionStore
	catalog  Catalog
	basket   Basket
	rates    Rates
	lookup   Lookup // может быть nil — внешний справочник выключен
	adminID  int64
	log      *logrus.Logger
	handlers map[State]handlerFunc
}

func NewManager(sessions SessionStore, catalog Catalog, basket Basket, rates Rates, lookup Lookup, adminID int64, log *logrus.Logger) *Manager {
	m := &Manager{
		sessions: sessions,
		catalog:  catalog,
		basket:   basket,
		rates:    rates,
		lookup:   lookup,
		adminID:  adminID,
		log:      log,
	}
	m.handlers = map[State]handlerFunc{
		StateMainMenu:   m.handleMainMenu,
		StateDollarMenu: m.handleDollarMenu,
		StateRateInput:  m.handleRateInput,

		StateBarcodeInput: m.handleBarcodeInput,
		StateWeightInput:  m.handleWeightInput,
		StatePriceInput:   m.handlePriceInput,
		StatePriceDone:    m.handlePriceDone,

		StateAddName:         m.handleAddName,
		StateAddArtikul:      m.handleAddArtikul,
		StateAddCategory:     m.handleAddCategory,
		StateAddPostavshik:   m.handleAddPostavshik,
		StateAddStock:        m.handleAddStock,
		StateAddCenaPostavki: m.handleAddCenaPostavki,
		StateAddCenaProdaji:  m.handleAddCenaProdaji,
		StateAddSkidka:       m.handleAddSkidka,
		StateAddBrend:        m.handleAddBrend,
		StateAddSrok:         m.handleAddSrok,
		StateAddEdinitsa:     m.handleAddEdinitsa,
		StateAddBarcode:      m.handleAddBarcode,
		StateAddDone:         m.handleAddDone,

		StateViewProducts: m.handleViewProducts,
		StateReports:      m.handleReports,

		StateAdminMenu:     m.handleAdminMenu,
		StateUpdateBarcode: m.handleUpdateBarcode,
		StateUpdateName:    m.handleUpdateName,
		StateUpdateWeight:  m.handleUpdateWeight,
		StateUpdatePrice:   m.handleUpdatePrice,
		StateDeleteProduct: m.handleDeleteProduct,
		StateImportExport:  m.handleImportExport,

		StateBasketMenu:   m.handleBasketMenu,
		StateBasketAdd:    m.handleBasketAdd,
		StateBasketPrice:  m.handleBasketPrice,
		StateBasketInline: m.handleBasketInline,
		StateBasketView:   m.handleBasketView,
	}
	return m
}

// Handle обрабатывает одно событие оператора от начала до конца
func (m *Manager) Handle(ctx context.Context, userID int64, ev Event) Reply {
	sess, err := m.sessions.GetOrCreate(ctx, userID)
	if err != nil {
		m.log.WithError(err).WithField("user_id", userID).Error("❌ Не удалось получить сессию")
		return m.failureReply()
	}

	// /start и /cancel работают из любого состояния
	switch strings.TrimSpace(ev.Text) {
	case "/start":
		return m.transition(ctx, sess, m.greet(sess.UserID), StateMainMenu)
	case "/cancel":
		return m.transition(ctx, sess,
			keyboardMsg("Bekor qilindi.", mainMenuKeyboard(m.isAdmin(sess.UserID))),
			StateMainMenu)
	}

	// Кнопка noop на экране количества — просто подтверждаем нажатие
	if ev.Callback == cbNoop {
		return Reply{Notice: &Notice{}}
	}

	h, ok := m.handlers[sess.State]
	if !ok {
		// Неизвестное состояние (например, после деплоя) — начинаем заново
		m.log.WithFields(logrus.Fields{"user_id": userID, "state": sess.State}).
			Warn("⚠️ Сессия в неизвестном состоянии, сброс в главное меню")
		return m.transition(ctx, sess, m.greet(sess.UserID), StateMainMenu)
	}

	reply, next, err := h(ctx, sess, ev)
	if err != nil {
		// Отказ зависимости: состояние не трогаем, оператор повторит ввод
		m.log.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"state":   sess.State,
		}).Error("❌ Ошибка обработчика шага")
		return m.failureReply()
	}

	return m.transition(ctx, sess, reply, next)
}

// transition фиксирует новое состояние и отдаёт ответ.
// Вход в главное меню завершает сценарий и чистит черновик.
func (m *Manager) transition(ctx context.Context, sess *Session, reply Reply, next State) Reply {
	if next == StateMainMenu {
		sess.ClearScratch()
	}
	sess.State = next
	if err := m.sessions.Save(ctx, sess); err != nil {
		m.log.WithError(err).WithField("user_id", sess.UserID).Error("❌ Не удалось сохранить сессию")
	}
	return reply
}

func (m *Manager) isAdmin(userID int64) bool {
	return userID == m.adminID
}

// denyNonAdmin — общий ответ на попытку попасть в админскую ветку
func (m *Manager) denyNonAdmin() (Reply, State, error) {
	return keyboardMsg("Siz admin emassiz!", mainMenuKeyboard(false)), StateMainMenu, nil
}

func (m *Manager) greet(userID int64) Reply {
	return keyboardMsg(
		"Salom! Botga xush kelibsiz.\nQuyidagi menyudan tanlang:",
		mainMenuKeyboard(m.isAdmin(userID)))
}

func (m *Manager) failureReply() Reply {
	return textMsg("Xatolik yuz berdi. Birozdan so'ng qayta urinib ko'ring.")
}
