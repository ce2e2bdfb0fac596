// Package memory implementa los puertos de persistencia en memoria, con transacciones
// que bufferean sus escrituras y las aplican bajo el mutex del store al hacer Commit.
// Sirve como backend de desarrollo (LEDGER_BACKEND=memory) y para pruebas de concurrencia.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Store estado compartido del backend en memoria. Los registros se guardan por valor y
// se copian al leer, así que un lector nunca observa un registro a medio escribir.
type Store struct {
	mu         sync.RWMutex
	products   map[string]entity.Product
	sales      map[string]entity.Sale
	saleSeq    []string // orden de inserción
	expenses   map[string]entity.Expense
	expenseSeq []string
	movements  []entity.StockMovement
	users      map[string]entity.User
	userSeq    []string

	// Un semáforo de capacidad 1 por producto: lo toma GetForUpdate/AdjustQuantity y se
	// libera al terminar la transacción. Productos distintos nunca comparten lock.
	// La entrada vive mientras haya un poseedor o alguien esperando.
	lockMu sync.Mutex
	locks  map[string]*productLock
}

type productLock struct {
	ch   chan struct{}
	refs int // poseedor + esperando
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products: make(map[string]entity.Product),
		sales:    make(map[string]entity.Sale),
		expenses: make(map[string]entity.Expense),
		users:    make(map[string]entity.User),
		locks:    make(map[string]*productLock),
	}
}

// Close no libera nada; existe para que main trate ambos backends igual.
func (s *Store) Close() {}

func (s *Store) ref(id string) *productLock {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &productLock{ch: make(chan struct{}, 1)}
		s.locks[id] = l
	}
	l.refs++
	return l
}

func (s *Store) unref(id string, l *productLock) {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, id)
	}
}

// acquire bloquea el producto id respetando la cancelación de ctx.
func (s *Store) acquire(ctx context.Context, id string) error {
	l := s.ref(id)
	select {
	case l.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		s.unref(id, l)
		return ctx.Err()
	}
}

// release libera el producto id; solo lo llama quien lo adquirió.
func (s *Store) release(id string) {
	s.lockMu.Lock()
	l := s.locks[id]
	s.lockMu.Unlock()
	<-l.ch
	s.unref(id, l)
}

func removeID(seq []string, id string) []string {
	for i, v := range seq {
		if v == id {
			return append(seq[:i:i], seq[i+1:]...)
		}
	}
	return seq
}
