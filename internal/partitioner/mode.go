package partitioner

type Mode string

const (
	RandomMode     Mode = "random"      // Случайный шард
	RoundRobinMode Mode = "round_robin" // Шарды по кругу
	KeyMode        Mode = "key"         // Шард по хэшу ключа

	defaultMode = RoundRobinMode
)

// KeepsKeyOrder сообщает, попадают ли элементы одного ключа всегда в один шард.
// Только в этом случае сохраняется порядок элементов одной сущности.
func (m Mode) KeepsKeyOrder() bool {
	return m == KeyMode
}
