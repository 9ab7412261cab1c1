// Storage entities and storage-type metadata. Storage types are parsed from
// the platform and may reference the storage model; they are released during
// shutdown phase 2, strictly before model destruction.

package sim

import "fmt"

// StorageType is named metadata shared by every storage of that type.
type StorageType struct {
	ID              string
	Model           string // storage model name the type was declared for
	Content         string
	Properties      map[string]string
	ModelProperties map[string]string

	released bool
}

// Released reports whether the type's metadata has been released by the
// lifecycle manager.
func (st *StorageType) Released() bool { return st.released }

func (st *StorageType) release() {
	st.Properties = nil
	st.ModelProperties = nil
	st.released = true
}

// Storage is a simulation-visible storage resource, attached to a host and
// served by the storage model.
type Storage struct {
	name           string
	typ            *StorageType
	attachedTo     string
	readBandwidth  float64
	writeBandwidth float64
	engine         *Engine
}

// AddStorage creates and registers a storage. typeID must name a registered
// storage type; attach names the host the storage is mounted on.
func (e *Engine) AddStorage(name, typeID, attach string, readBandwidth, writeBandwidth float64) (*Storage, error) {
	st := e.StorageTypeByNameOrNil(typeID)
	if st == nil {
		return nil, fmt.Errorf("storage %q references unknown storage type %q", name, typeID)
	}
	s := &Storage{
		name:           name,
		typ:            st,
		attachedTo:     attach,
		readBandwidth:  readBandwidth,
		writeBandwidth: writeBandwidth,
		engine:         e,
	}
	e.RegisterStorage(s)
	return s, nil
}

// Name returns the storage name.
func (s *Storage) Name() string { return s.name }

// Type returns the storage-type metadata.
func (s *Storage) Type() *StorageType { return s.typ }

// AttachedTo returns the name of the host the storage is mounted on.
func (s *Storage) AttachedTo() string { return s.attachedTo }

// ReadAsync starts a read of the given size (bytes).
func (s *Storage) ReadAsync(bytes float64) *Activity {
	e := s.engine
	action := e.storageModel.IO(e.now, s.readBandwidth, bytes)
	return newActivity(e, ActivityIo, fmt.Sprintf("%s-read", s.name), action)
}

// WriteAsync starts a write of the given size (bytes).
func (s *Storage) WriteAsync(bytes float64) *Activity {
	e := s.engine
	action := e.storageModel.IO(e.now, s.writeBandwidth, bytes)
	return newActivity(e, ActivityIo, fmt.Sprintf("%s-write", s.name), action)
}

// releaseStorageTypes is shutdown phase 2.
func (e *Engine) releaseStorageTypes() {
	for _, st := range e.storageTypes.all() {
		st.release()
	}
	e.storageTypes.clear()
}
