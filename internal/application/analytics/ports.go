package analytics

import "context"

// SnapshotCache guarda snapshots serializados entre mutaciones.
//
// Get devuelve la versión vigente del caché aunque no haya entrada (ok=false); Set debe
// recibir esa misma versión, de modo que un snapshot calculado antes de una invalidación
// nunca quede visible después de ella.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (value []byte, version int64, ok bool, err error)
	Set(ctx context.Context, key string, version int64, value []byte) error
	Invalidate(ctx context.Context) error
}
