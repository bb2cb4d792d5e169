// Package memory implementa los puertos de persistencia en memoria.
// Se usa con DB_DRIVER=memory para desarrollo local y en los tests de casos de uso y HTTP.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/factory-api/internal/application/assembly"
	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

var (
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.ComponentRepository = (*ComponentRepo)(nil)
	_ repository.DeviceRepository    = (*DeviceRepo)(nil)
	_ assembly.TxRunner              = (*Store)(nil)
)

// Store datos compartidos por los repositorios en memoria.
type Store struct {
	mu         sync.RWMutex
	txMu       sync.Mutex
	seq        int64
	order      int64
	users      map[string]record[entity.User]
	components map[string]record[entity.Component]
	devices    map[string]record[entity.Device]
}

// record guarda una copia de la entidad y su orden de inserción.
type record[T any] struct {
	v     T
	order int64
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		users:      map[string]record[entity.User]{},
		components: map[string]record[entity.Component]{},
		devices:    map[string]record[entity.Device]{},
	}
}

// Users repositorio de usuarios sobre el store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Components repositorio de componentes sobre el store.
func (s *Store) Components() *ComponentRepo { return &ComponentRepo{s: s} }

// Devices repositorio de dispositivos sobre el store.
func (s *Store) Devices() *DeviceRepo { return &DeviceRepo{s: s} }

// Run serializa las transacciones. Si fn falla sólo se deshacen las claves que
// fn escribió; las escrituras concurrentes fuera de la tx se conservan.
func (s *Store) Run(_ context.Context, fn func(
	componentRepo repository.ComponentRepository,
	deviceRepo repository.DeviceRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	j := &journal{
		components: map[string]*record[entity.Component]{},
		devices:    map[string]*record[entity.Device]{},
	}
	if err := fn(&ComponentRepo{s: s, j: j}, &DeviceRepo{s: s, j: j}); err != nil {
		s.mu.Lock()
		undo(s.components, j.components)
		undo(s.devices, j.devices)
		s.mu.Unlock()
		return err
	}
	return nil
}

// journal valor previo de cada clave escrita dentro de una tx (nil = no existía).
type journal struct {
	components map[string]*record[entity.Component]
	devices    map[string]*record[entity.Device]
}

// remember guarda el valor previo de id la primera vez que la tx lo escribe.
// Se llama con s.mu tomado.
func remember[T any](prev map[string]*record[T], live map[string]record[T], id string) {
	if _, seen := prev[id]; seen {
		return
	}
	if rec, ok := live[id]; ok {
		prev[id] = &rec
		return
	}
	prev[id] = nil
}

func undo[T any](live map[string]record[T], prev map[string]*record[T]) {
	for id, rec := range prev {
		if rec == nil {
			delete(live, id)
			continue
		}
		live[id] = *rec
	}
}

func (s *Store) nextOrder() int64 {
	s.order++
	return s.order
}

// sorted devuelve los valores por orden de inserción.
func sorted[T any](m map[string]record[T]) []T {
	recs := make([]record[T], 0, len(m))
	for _, r := range m {
		recs = append(recs, r)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].order < recs[j].order })
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.v)
	}
	return out
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ---------- Users ----------

// UserRepo implementación en memoria de repository.UserRepository.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.users {
		if rec.v.Email == u.Email {
			return domain.Errorf(domain.ErrEmailAlreadyExists, "user with email %s already exists", u.Email)
		}
	}
	r.s.users[u.ID] = record[entity.User]{v: *u, order: r.s.nextOrder()}
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	u := rec.v
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.users {
		if rec.v.Email == email {
			u := rec.v
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.User
	for _, u := range page(sorted(r.s.users), limit, offset) {
		u := u
		out = append(out, &u)
	}
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.users[u.ID]
	if !ok {
		return nil
	}
	for id, other := range r.s.users {
		if id != u.ID && other.v.Email == u.Email {
			return domain.Errorf(domain.ErrEmailAlreadyExists, "user with email %s already exists", u.Email)
		}
	}
	rec.v = *u
	r.s.users[u.ID] = rec
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return false, nil
	}
	delete(r.s.users, id)
	return true, nil
}

// ---------- Components ----------

// ComponentRepo implementación en memoria de repository.ComponentRepository.
type ComponentRepo struct {
	s *Store
	j *journal // nil fuera de Run
}

func (r *ComponentRepo) touch(id string) {
	if r.j != nil {
		remember(r.j.components, r.s.components, id)
	}
}

func (r *ComponentRepo) NextSequence(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq++
	return r.s.seq, nil
}

func (r *ComponentRepo) Create(_ context.Context, c *entity.Component) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.touch(c.ID)
	r.s.components[c.ID] = record[entity.Component]{v: *c, order: r.s.nextOrder()}
	return nil
}

func (r *ComponentRepo) GetByID(_ context.Context, id string) (*entity.Component, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.components[id]
	if !ok {
		return nil, nil
	}
	c := rec.v
	return &c, nil
}

func (r *ComponentRepo) List(_ context.Context, limit, offset int) ([]*entity.Component, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Component
	for _, c := range page(sorted(r.s.components), limit, offset) {
		c := c
		out = append(out, &c)
	}
	return out, nil
}

func (r *ComponentRepo) Update(_ context.Context, c *entity.Component) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.components[c.ID]; ok {
		r.touch(c.ID)
		rec.v = *c
		r.s.components[c.ID] = rec
	}
	return nil
}

func (r *ComponentRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.components[id]; ok {
		r.touch(id)
		rec.v.Status = status
		r.s.components[id] = rec
	}
	return nil
}

// FindForAssembly prefiere el componente más antiguo calificado y no rechazado;
// si no hay, el más antiguo del tipo.
func (r *ComponentRepo) FindForAssembly(_ context.Context, typ, excludeID string) (*entity.Component, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var fallback *entity.Component
	for _, c := range sorted(r.s.components) {
		if c.Type != typ || c.ID == excludeID {
			continue
		}
		c := c
		if c.IsGraded() && c.Status != entity.StatusRejected {
			return &c, nil
		}
		if fallback == nil {
			fallback = &c
		}
	}
	return fallback, nil
}

func (r *ComponentRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.components[id]; !ok {
		return false, nil
	}
	r.touch(id)
	delete(r.s.components, id)
	return true, nil
}

// ---------- Devices ----------

// DeviceRepo implementación en memoria de repository.DeviceRepository.
type DeviceRepo struct {
	s *Store
	j *journal // nil fuera de Run
}

func (r *DeviceRepo) touch(id string) {
	if r.j != nil {
		remember(r.j.devices, r.s.devices, id)
	}
}

func (r *DeviceRepo) Create(_ context.Context, d *entity.Device) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.touch(d.ID)
	r.s.devices[d.ID] = record[entity.Device]{v: *d, order: r.s.nextOrder()}
	return nil
}

func (r *DeviceRepo) GetByID(_ context.Context, id string) (*entity.Device, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.devices[id]
	if !ok {
		return nil, nil
	}
	d := rec.v
	return &d, nil
}

func (r *DeviceRepo) List(_ context.Context, limit, offset int) ([]*entity.Device, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Device
	for _, d := range page(sorted(r.s.devices), limit, offset) {
		d := d
		out = append(out, &d)
	}
	return out, nil
}

func (r *DeviceRepo) Update(_ context.Context, d *entity.Device) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.devices[d.ID]; ok {
		r.touch(d.ID)
		rec.v = *d
		r.s.devices[d.ID] = rec
	}
	return nil
}

func (r *DeviceRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.devices[id]; !ok {
		return false, nil
	}
	r.touch(id)
	delete(r.s.devices, id)
	return true, nil
}
