package dialog

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// Session — состояние диалога одного оператора плюс черновые данные
// многошагового ввода. Живёт только на время диалога: потеря сессии
// посреди сценария просто возвращает оператора в главное меню.
type Session struct {
	UserID  int64             `json:"user_id"`
	State   State             `json:"state"`
	Scratch map[string]string `json:"scratch"`
}

func newSession(userID int64) *Session {
	return &Session{
		UserID:  userID,
		State:   StateMainMenu,
		Scratch: map[string]string{},
	}
}

// Set кладёт строковое значение в черновик
func (s *Session) Set(key, value string) {
	if s.Scratch == nil {
		s.Scratch = map[string]string{}
	}
	s.Scratch[key] = value
}

// SetFloat / SetInt — числовые значения хранятся строками,
// чтобы сессия без потерь переживала сериализацию в Redis
func (s *Session) SetFloat(key string, value float64) {
	s.Set(key, strconv.FormatFloat(value, 'f', -1, 64))
}

func (s *Session) SetInt(key string, value int64) {
	s.Set(key, strconv.FormatInt(value, 10))
}

// Get возвращает значение или дефолт
func (s *Session) Get(key, def string) string {
	if v, ok := s.Scratch[key]; ok {
		return v
	}
	return def
}

// Has — ключ присутствует в черновике
func (s *Session) Has(key string) bool {
	_, ok := s.Scratch[key]
	return ok
}

func (s *Session) GetFloat(key string, def float64) float64 {
	v, ok := s.Scratch[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func (s *Session) GetInt(key string, def int64) int64 {
	v, ok := s.Scratch[key]
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// Delete убирает ключ из черновика
func (s *Session) Delete(key string) {
	delete(s.Scratch, key)
}

// ClearScratch сбрасывает черновик при выходе из сценария
func (s *Session) ClearScratch() {
	s.Scratch = map[string]string{}
}

// SessionStore — хранилище сессий. Движок сериализует обращения
// к одной сессии сам: события одного оператора обрабатываются по очереди.
type SessionStore interface {
	GetOrCreate(ctx context.Context, userID int64) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, userID int64) error
}

// MemoryStore — сессии в памяти процесса. Используется, когда Redis
// не настроен, и в тестах. Фоновая уборка выкидывает простаивающие
// сессии, чтобы память не росла бесконечно.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[int64]*memoryEntry
}

type memoryEntry struct {
	session  *Session
	lastSeen time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: map[int64]*memoryEntry{},
	}
}

func (m *MemoryStore) GetOrCreate(_ context.Context, userID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[userID]; ok {
		e.lastSeen = time.Now()
		return e.session, nil
	}
	s := newSession(userID)
	m.entries[userID] = &memoryEntry{session: s, lastSeen: time.Now()}
	return s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.UserID] = &memoryEntry{session: s, lastSeen: time.Now()}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, userID)
	return nil
}

// StartJanitor запускает фоновую уборку простаивающих сессий
func (m *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sweep()
			}
		}
	}()
}

func (m *MemoryStore) sweep() {
	if m.ttl <= 0 {
		return
	}
	deadline := time.Now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		if e.lastSeen.Before(deadline) {
			delete(m.entries, id)
		}
	}
}
