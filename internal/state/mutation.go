package state

import (
	"errors"
	"fmt"

	"github.com/hielopolar/polar/internal/asset"
	"github.com/hielopolar/polar/internal/notify"
)

// ErrDuplicateID rejects an add whose id is already in the collection.
var ErrDuplicateID = errors.New("duplicate asset id")

// Op names a mutation.
type Op int

const (
	OpAdd Op = iota
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Mutation is a single change requested by the presentation layer.
type Mutation struct {
	Op    Op
	Asset asset.Asset // OpAdd
	ID    string      // OpUpdate, OpDelete
	Patch asset.Patch // OpUpdate
}

// Add builds an add mutation.
func Add(a asset.Asset) Mutation { return Mutation{Op: OpAdd, Asset: a} }

// Update builds an update mutation.
func Update(id string, p asset.Patch) Mutation { return Mutation{Op: OpUpdate, ID: id, Patch: p} }

// Delete builds a delete mutation.
func Delete(id string) Mutation { return Mutation{Op: OpDelete, ID: id} }

// EffectKind names a side effect produced by Apply.
type EffectKind int

const (
	EffectPersist EffectKind = iota
	EffectNotify
	EffectRemoteInsert
	EffectRemoteUpsert
	EffectRemoteDelete
)

// Effect is a side effect the store runs after a mutation.
type Effect struct {
	Kind   EffectKind
	Notice notify.Notice // EffectNotify
	Asset  asset.Asset   // EffectRemoteInsert, EffectRemoteUpsert
	ID     string        // EffectRemoteDelete
}

// TargetID is the asset id a remote effect writes.
func (e Effect) TargetID() string {
	if e.Kind == EffectRemoteDelete {
		return e.ID
	}
	return e.Asset.ID
}

// Result is the outcome of applying a mutation.
type Result struct {
	Assets  asset.Collection
	Effects []Effect
	Err     error
	// Changed is false for rejected mutations and for update/delete of an
	// id that is not present.
	Changed bool
}

// Apply computes the collection that results from m without performing I/O.
// The input collection is never modified.
func Apply(c asset.Collection, m Mutation) Result {
	switch m.Op {
	case OpAdd:
		return applyAdd(c, m.Asset)
	case OpUpdate:
		return applyUpdate(c, m.ID, m.Patch)
	case OpDelete:
		return applyDelete(c, m.ID)
	default:
		return Result{Assets: c, Err: fmt.Errorf("unknown mutation %v", m.Op)}
	}
}

func applyAdd(c asset.Collection, a asset.Asset) Result {
	a = a.Normalize()
	if err := a.Validate(); err != nil {
		return rejected(c, err, "No se pudo añadir el conservador. Revisa los campos obligatorios.")
	}
	if c.Index(a.ID) >= 0 {
		return rejected(c, fmt.Errorf("%w: %s", ErrDuplicateID, a.ID),
			fmt.Sprintf("Ya existe un conservador con el ID %s.", a.ID))
	}
	next := make(asset.Collection, 0, len(c)+1)
	next = append(next, c.Clone()...)
	next = append(next, a.Clone())
	return Result{
		Assets:  next,
		Changed: true,
		Effects: []Effect{
			{Kind: EffectPersist},
			{Kind: EffectNotify, Notice: notify.New(notify.Success, "Conservador añadido", "El conservador ha sido añadido con éxito.")},
			{Kind: EffectRemoteInsert, Asset: a.Clone()},
		},
	}
}

func applyUpdate(c asset.Collection, id string, p asset.Patch) Result {
	idx := c.Index(id)
	if idx < 0 || p.Empty() {
		return Result{Assets: c}
	}
	updated := p.Apply(c[idx])
	if !updated.Status.Valid() {
		return rejected(c, fmt.Errorf("%w: unknown status %q", asset.ErrInvalidAsset, updated.Status),
			"No se pudo actualizar el conservador. Estado no válido.")
	}
	if updated.Model == "" {
		return rejected(c, fmt.Errorf("%w: model is required", asset.ErrInvalidAsset),
			"No se pudo actualizar el conservador. El modelo es obligatorio.")
	}
	next := c.Clone()
	next[idx] = updated
	return Result{
		Assets:  next,
		Changed: true,
		Effects: []Effect{
			{Kind: EffectPersist},
			{Kind: EffectNotify, Notice: notify.New(notify.Success, "Conservador actualizado", "La información del conservador ha sido actualizada.")},
			{Kind: EffectRemoteUpsert, Asset: updated.Clone()},
		},
	}
}

func applyDelete(c asset.Collection, id string) Result {
	idx := c.Index(id)
	if idx < 0 {
		return Result{Assets: c}
	}
	next := make(asset.Collection, 0, len(c)-1)
	for i, a := range c {
		if i != idx {
			next = append(next, a.Clone())
		}
	}
	return Result{
		Assets:  next,
		Changed: true,
		Effects: []Effect{
			{Kind: EffectPersist},
			{Kind: EffectNotify, Notice: notify.New(notify.Success, "Conservador eliminado", "El conservador ha sido eliminado.")},
			{Kind: EffectRemoteDelete, ID: id},
		},
	}
}

func rejected(c asset.Collection, err error, description string) Result {
	return Result{
		Assets: c,
		Err:    err,
		Effects: []Effect{
			{Kind: EffectNotify, Notice: notify.New(notify.Error, "Error", description)},
		},
	}
}
