package model

import "sync"

// WorldObject — базовый объект игрового мира.
// Имеет неизменяемый ObjectID, имя и флаг видимости.
type WorldObject struct {
	objectID uint32
	name     string
	visible  bool

	mu sync.RWMutex
}

// NewWorldObject создаёт новый видимый объект.
func NewWorldObject(objectID uint32, name string) *WorldObject {
	return &WorldObject{
		objectID: objectID,
		name:     name,
		visible:  true,
	}
}

// ObjectID возвращает уникальный ID объекта (immutable после создания).
func (w *WorldObject) ObjectID() uint32 {
	return w.objectID
}

// Name возвращает имя объекта.
func (w *WorldObject) Name() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.name
}

// SetName устанавливает имя объекта.
func (w *WorldObject) SetName(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.name = name
}

// IsVisible возвращает true если объект виден (enabled) в мире.
func (w *WorldObject) IsVisible() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.visible
}

// setVisible меняет флаг видимости. Возвращает true если значение изменилось.
func (w *WorldObject) setVisible(visible bool) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.visible == visible {
		return false
	}
	w.visible = visible
	return true
}
