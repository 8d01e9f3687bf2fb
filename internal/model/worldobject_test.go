package model

import (
	"sync"
	"testing"
)

func TestNewWorldObject(t *testing.T) {
	obj := NewWorldObject(12345, "TestObject")

	if obj == nil {
		t.Fatal("NewWorldObject() returned nil")
	}
	if obj.ObjectID() != 12345 {
		t.Errorf("ObjectID() = %d, want 12345", obj.ObjectID())
	}
	if obj.Name() != "TestObject" {
		t.Errorf("Name() = %q, want %q", obj.Name(), "TestObject")
	}
	if !obj.IsVisible() {
		t.Error("new object should be visible")
	}
}

func TestWorldObject_SetVisible(t *testing.T) {
	obj := NewWorldObject(1, "Test")

	if obj.setVisible(true) {
		t.Error("setVisible(true) on visible object should report no change")
	}
	if !obj.setVisible(false) {
		t.Error("setVisible(false) should report change")
	}
	if obj.IsVisible() {
		t.Error("object should be hidden")
	}
}

func TestWorldObject_ConcurrentAccess(t *testing.T) {
	obj := NewWorldObject(1, "Test")

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			obj.SetName("Name")
			obj.setVisible(i%2 == 0)
		}()
		go func() {
			defer wg.Done()
			_ = obj.Name()
			_ = obj.IsVisible()
		}()
	}
	wg.Wait()
}
