package memory

// LockEntries cuenta las entradas vivas del mapa de locks.
func LockEntries(s *Store) int {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	return len(s.locks)
}
