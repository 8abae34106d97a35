package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 添加组件
	pos := &testPositionComponent{X: 100, Y: 200}
	em.AddComponent(id, pos)

	// 获取组件
	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Error("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestHasComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 未添加组件前应该返回false
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Should not have component before adding")
	}

	// 添加组件
	em.AddComponent(id, &testPositionComponent{})

	// 添加后应该返回true
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Should have component after adding")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testVelocityComponent{})

	// 查询拥有 Position+Velocity 的实体
	entities := em.GetEntitiesWith(
		reflect.TypeOf(&testPositionComponent{}),
		reflect.TypeOf(&testVelocityComponent{}),
	)

	if len(entities) != 1 {
		t.Errorf("Expected 1 entity with both components, got %d", len(entities))
	}

	if len(entities) > 0 && entities[0] != id1 {
		t.Error("Query should return only id1")
	}

	// 查询只拥有 Position 的实体
	posEntities := em.GetEntitiesWith(reflect.TypeOf(&testPositionComponent{}))
	if len(posEntities) != 2 {
		t.Errorf("Expected 2 entities with Position component, got %d", len(posEntities))
	}
}

func TestMultipleComponentTypes(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 添加多个不同类型的组件
	em.AddComponent(id, &testPositionComponent{X: 10, Y: 20})
	em.AddComponent(id, &testVelocityComponent{VX: 5, VY: 10})

	// 验证两个组件都能正确获取
	posComp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Error("Position component should be found")
	}
	pos := posComp.(*testPositionComponent)
	if pos.X != 10 || pos.Y != 20 {
		t.Error("Position component data mismatch")
	}

	velComp, found := em.GetComponent(id, reflect.TypeOf(&testVelocityComponent{}))
	if !found {
		t.Error("Velocity component should be found")
	}
	vel := velComp.(*testVelocityComponent)
	if vel.VX != 5 || vel.VY != 10 {
		t.Error("Velocity component data mismatch")
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	// 创建多个实体
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()

	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id2, &testPositionComponent{})
	em.AddComponent(id3, &testPositionComponent{})

	// 标记两个实体删除
	em.DestroyEntity(id1)
	em.DestroyEntity(id3)

	// 清理
	em.RemoveMarkedEntities()

	// 验证只有id2存在
	if em.HasComponent(id1, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("id1 should be removed")
	}
	if !em.HasComponent(id2, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("id2 should still exist")
	}
	if em.HasComponent(id3, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("id3 should be removed")
	}
}

func TestGetEntitiesWithPreservesCreationOrder(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 10)
	for i := 0; i < 10; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: float64(i)})
		ids = append(ids, id)
	}

	// 多次查询结果顺序必须一致，且与创建顺序相同
	for round := 0; round < 5; round++ {
		got := em.GetEntitiesWith(reflect.TypeOf(&testPositionComponent{}))
		if len(got) != len(ids) {
			t.Fatalf("round %d: expected %d entities, got %d", round, len(ids), len(got))
		}
		for i := range ids {
			if got[i] != ids[i] {
				t.Fatalf("round %d: index %d expected %d, got %d", round, i, ids[i], got[i])
			}
		}
	}

	// 删除中间的实体后，剩余实体保持相对顺序
	em.DestroyEntity(ids[3])
	em.DestroyEntity(ids[7])
	em.RemoveMarkedEntities()

	got := em.GetEntitiesWith(reflect.TypeOf(&testPositionComponent{}))
	expected := []EntityID{ids[0], ids[1], ids[2], ids[4], ids[5], ids[6], ids[8], ids[9]}
	if len(got) != len(expected) {
		t.Fatalf("expected %d entities after removal, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("index %d expected %d, got %d", i, expected[i], got[i])
		}
	}
}

func TestDestroyEntityIsIdempotent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.DestroyEntity(id)
	em.DestroyEntity(id)

	if !em.IsMarkedForDestroy(id) {
		t.Error("entity should be marked for destroy")
	}
	if !em.Exists(id) {
		t.Error("marked entity should exist until cleanup")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("entity should not exist after cleanup")
	}
	if em.IsMarkedForDestroy(id) {
		t.Error("pending set should be cleared after cleanup")
	}
	if em.EntityCount() != 0 {
		t.Errorf("expected 0 entities, got %d", em.EntityCount())
	}

	// 销毁不存在的实体不产生副作用
	em.DestroyEntity(EntityID(42))
	if em.IsMarkedForDestroy(EntityID(42)) {
		t.Error("unknown entity should not be marked")
	}
}

func TestEntityIDsNotReusedAfterClear(t *testing.T) {
	em := NewEntityManager()
	first := em.CreateEntity()
	em.Clear()

	if em.EntityCount() != 0 {
		t.Errorf("expected no entities after Clear, got %d", em.EntityCount())
	}

	second := em.CreateEntity()
	if second <= first {
		t.Errorf("entity IDs should keep increasing, got %d after %d", second, first)
	}
}

func TestGenericAccessors(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 3, Y: 4})

	t.Run("泛型获取", func(t *testing.T) {
		pos, ok := GetComponent[*testPositionComponent](em, id)
		if !ok {
			t.Fatal("component should be found")
		}
		if pos.X != 3 || pos.Y != 4 {
			t.Errorf("unexpected component data (%f, %f)", pos.X, pos.Y)
		}
	})

	t.Run("与反射接口互通", func(t *testing.T) {
		if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
			t.Error("generic AddComponent should be visible to reflection API")
		}
		if !HasComponent[*testPositionComponent](em, id) {
			t.Error("HasComponent should report true")
		}
	})

	t.Run("缺失组件", func(t *testing.T) {
		if _, ok := GetComponent[*testVelocityComponent](em, id); ok {
			t.Error("missing component should not be found")
		}
	})

	t.Run("泛型查询", func(t *testing.T) {
		other := em.CreateEntity()
		AddComponent(em, other, &testPositionComponent{})
		AddComponent(em, other, &testVelocityComponent{})

		if got := GetEntitiesWith1[*testPositionComponent](em); len(got) != 2 {
			t.Errorf("expected 2 entities with position, got %d", len(got))
		}
		got := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
		if len(got) != 1 || got[0] != other {
			t.Errorf("expected only entity %d, got %v", other, got)
		}
	})

	t.Run("泛型移除", func(t *testing.T) {
		RemoveComponent[*testPositionComponent](em, id)
		if HasComponent[*testPositionComponent](em, id) {
			t.Error("component should be removed")
		}
	})
}
