package queue

type element[E any] struct {
	item   E
	future *Future
}
