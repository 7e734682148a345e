package taxonecs

import (
	"testing"

	"go.uber.org/zap"
)

func BenchmarkDataPoolAdd(b *testing.B) {
	w := NewWorld(DefaultConfig(), zap.NewNop())
	health := NewDataPool[dpTestHealth](w)
	w.AddArchetype([]ComponentType{health.ComponentType()}, nil)
	w.Initialize()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		health.Add(Entity(uint32(i)+1), dpTestHealth{HP: i})
	}
}

func BenchmarkDataPoolForEach(b *testing.B) {
	w := NewWorld(DefaultConfig(), zap.NewNop())
	health := NewDataPool[dpTestHealth](w)
	w.AddArchetype([]ComponentType{health.ComponentType()}, nil)
	w.Initialize()

	const n = 10000
	for i := 0; i < n; i++ {
		e := w.CreateEntity()
		health.Add(e, dpTestHealth{HP: i})
	}
	w.Reconcile()
	q := w.MakeQuery(health.ComponentType())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sum := 0
		health.ForEach(q, func(e Entity, v *dpTestHealth) { sum += v.HP })
	}
}
