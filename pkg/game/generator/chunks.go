package generator

import (
	"github.com/zyedidia/generic/heap"

	"officeworld/pkg/engine/world"
)

// chunk is a rectangle waiting to be subdivided, stamped with its insertion order
type chunk struct {
	rect world.Rectangle
	seq  int
}

// chunkQueue hands out the largest chunk first; equal areas come out in insertion order
type chunkQueue struct {
	heap *heap.Heap[chunk]
	seq  int
}

func newChunkQueue(rects ...world.Rectangle) *chunkQueue {
	q := &chunkQueue{
		heap: heap.New[chunk](func(a, b chunk) bool {
			if a.rect.Area() != b.rect.Area() {
				return a.rect.Area() > b.rect.Area()
			}
			return a.seq < b.seq
		}),
	}
	for _, r := range rects {
		q.push(r)
	}
	return q
}

func (q *chunkQueue) push(r world.Rectangle) {
	q.heap.Push(chunk{rect: r, seq: q.seq})
	q.seq++
}

func (q *chunkQueue) pop() (world.Rectangle, bool) {
	c, ok := q.heap.Pop()
	return c.rect, ok
}

func (q *chunkQueue) size() int {
	return q.heap.Size()
}

// drain empties the queue, returning the chunks in pop order
func (q *chunkQueue) drain() []world.Rectangle {
	out := make([]world.Rectangle, 0, q.size())
	for {
		r, ok := q.pop()
		if !ok {
			return out
		}
		out = append(out, r)
	}
}

// pending returns the queued chunks without changing the pop order
func (q *chunkQueue) pending() []world.Rectangle {
	var held []chunk
	for {
		c, ok := q.heap.Pop()
		if !ok {
			break
		}
		held = append(held, c)
	}
	out := make([]world.Rectangle, 0, len(held))
	for _, c := range held {
		q.heap.Push(c)
		out = append(out, c.rect)
	}
	return out
}
