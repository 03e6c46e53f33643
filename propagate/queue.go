// Package propagate implements the metadata propagation helper: given a
// frame index, it reads every feature currently known to a collector and,
// once all of them have a written score for that frame, delivers the
// (name, value) pairs to a caller-supplied sink.
package propagate

// emptySentinel is returned by Pop and PeekHead when the queue has no
// frames left.
const emptySentinel int32 = -1

// FrameQueue is a FIFO of frame indices.
type FrameQueue struct {
	frames []int32
}

// NewFrameQueue returns an empty FrameQueue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// Push appends frameIdx to the tail of the queue.
func (q *FrameQueue) Push(frameIdx int32) {
	q.frames = append(q.frames, frameIdx)
}

// Pop removes and returns the frame index at the head of the queue, or
// emptySentinel (-1) if the queue is empty.
func (q *FrameQueue) Pop() int32 {
	if len(q.frames) == 0 {
		return emptySentinel
	}
	head := q.frames[0]
	q.frames = q.frames[1:]
	return head
}

// PeekHead returns the frame index at the head of the queue without
// removing it, or emptySentinel (-1) if the queue is empty.
func (q *FrameQueue) PeekHead() int32 {
	if len(q.frames) == 0 {
		return emptySentinel
	}
	return q.frames[0]
}

// Len reports the number of frames currently queued.
func (q *FrameQueue) Len() int {
	return len(q.frames)
}
