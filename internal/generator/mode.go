package generator

type Mode string

// Режим генерации по умолчанию
const defaultMode Mode = RegularMode

// Режимы генерации телеметрии
const (
	RegularMode  Mode = "regular" // Постоянный поток значений
	PickLoadMode Mode = "pick"    // Пиковая нагрузка
	NightMode    Mode = "night"   // Ночные редкие значения
)

// Вероятности генерации значения за один тик для разных режимов
const (
	regularModeEntryProb = 0.1
	pickLoadMinEntries   = 5
	pickLoadMaxEntries   = 50
	nightModeEntryProb   = 0.001
)
