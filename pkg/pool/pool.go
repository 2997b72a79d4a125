// pkg/pool/pool.go
package pool

// WarmBatch: сколько объектов создаётся за один шаг прогрева пула.
const WarmBatch = 50

// Poolable: объект, который может жить в пуле.
// Индекс в live-списке хранится на самом объекте, чтобы удаление было O(1).
type Poolable interface {
	PoolIndex() int
	SetPoolIndex(i int)
	// Reset полностью очищает состояние, зависящее от жизненного цикла.
	Reset()
}

// Stats: снимок заполненности пула
type Stats struct {
	Total int
	Live  int
	Free  int
}

// Pool: пул переиспользуемых объектов с двумя коллекциями: free и live.
// Каждый созданный объект всегда лежит ровно в одной из них.
type Pool[T interface {
	comparable
	Poolable
}] struct {
	newFn   func() T
	free    []T
	live    []T
	total   int
	target  int // начальная ёмкость, до которой пул прогревается
	ceiling int // жёсткий предел, 0 — без ограничения
}

// New создаёт пул. Сразу строится только первая порция (не больше WarmBatch),
// остальное до initial добирается вызовами Warm.
func New[T interface {
	comparable
	Poolable
}](newFn func() T, initial, ceiling int) *Pool[T] {
	if ceiling > 0 && initial > ceiling {
		initial = ceiling
	}
	p := &Pool[T]{
		newFn:   newFn,
		free:    make([]T, 0, initial),
		live:    make([]T, 0, initial),
		target:  initial,
		ceiling: ceiling,
	}
	p.Warm(WarmBatch)
	return p
}

func (p *Pool[T]) construct() T {
	obj := p.newFn()
	obj.SetPoolIndex(-1)
	p.total++
	return obj
}

func (p *Pool[T]) full() bool {
	return p.ceiling > 0 && p.total >= p.ceiling
}

// Warm создаёт до batch свободных объектов, пока пул не достиг начальной ёмкости.
// Возвращает число созданных объектов.
func (p *Pool[T]) Warm(batch int) int {
	built := 0
	for built < batch && p.total < p.target && !p.full() {
		p.free = append(p.free, p.construct())
		built++
	}
	return built
}

// Warming сообщает, идёт ли ещё прогрев
func (p *Pool[T]) Warming() bool {
	return p.total < p.target && !p.full()
}

// Acquire берёт свободный объект или создаёт новый.
// ok == false только когда достигнут жёсткий предел: вызывающий просто пропускает спавн.
// Инициализацию объекта выполняет вызывающий.
func (p *Pool[T]) Acquire() (obj T, ok bool) {
	if n := len(p.free); n > 0 {
		obj = p.free[n-1]
		var zero T
		p.free[n-1] = zero
		p.free = p.free[:n-1]
	} else {
		if p.full() {
			return obj, false
		}
		obj = p.construct()
	}
	obj.SetPoolIndex(len(p.live))
	p.live = append(p.live, obj)
	return obj, true
}

// Release возвращает объект в free (swap-with-last).
// Объект, который не числится в live, не трогается: возвращается false.
func (p *Pool[T]) Release(obj T) bool {
	idx := obj.PoolIndex()
	if idx < 0 || idx >= len(p.live) || p.live[idx] != obj {
		return false
	}
	last := len(p.live) - 1
	moved := p.live[last]
	p.live[idx] = moved
	moved.SetPoolIndex(idx)
	var zero T
	p.live[last] = zero
	p.live = p.live[:last]

	obj.SetPoolIndex(-1)
	obj.Reset()
	p.free = append(p.free, obj)
	return true
}

// ReleaseAll возвращает в пул все живые объекты
func (p *Pool[T]) ReleaseAll() {
	for i := len(p.live) - 1; i >= 0; i-- {
		p.Release(p.live[i])
	}
}

// Live: живые объекты. Срез принадлежит пулу и меняется при Acquire/Release.
func (p *Pool[T]) Live() []T {
	return p.live
}

// Len: число живых объектов
func (p *Pool[T]) Len() int {
	return len(p.live)
}

func (p *Pool[T]) Stats() Stats {
	return Stats{Total: p.total, Live: len(p.live), Free: len(p.free)}
}

// SetCeiling меняет жёсткий предел. Уже созданные объекты не уничтожаются:
// при пониженном пределе пул просто перестаёт расти.
func (p *Pool[T]) SetCeiling(ceiling int) {
	p.ceiling = ceiling
}
