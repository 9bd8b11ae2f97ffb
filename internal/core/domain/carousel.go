package domain

import "fmt"

// Carousel - позиция в кольцевом списке картинок (hero, галерея, виртуальный тур).
// Нулевое значение с Len == 0 допустимо: все переходы ничего не делают.
type Carousel struct {
	Len     int
	Current int
}

func NewCarousel(length int) Carousel {
	if length < 0 {
		length = 0
	}
	return Carousel{Len: length}
}

// Next переходит к следующей картинке, после последней - снова к первой
func (c *Carousel) Next() int {
	if c.Len == 0 {
		return 0
	}
	c.Current = (c.Current + 1) % c.Len
	return c.Current
}

// Prev переходит к предыдущей картинке, перед первой - к последней
func (c *Carousel) Prev() int {
	if c.Len == 0 {
		return 0
	}
	c.Current = (c.Current - 1 + c.Len) % c.Len
	return c.Current
}

// Select выбирает картинку по индексу (точки под галереей, миниатюры тура)
func (c *Carousel) Select(index int) error {
	if index < 0 || index >= c.Len {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, c.Len)
	}
	c.Current = index
	return nil
}

// NextIndex и PrevIndex не меняют состояние - нужны для ссылок "вперед/назад"
func (c Carousel) NextIndex() int {
	c.Next()
	return c.Current
}

func (c Carousel) PrevIndex() int {
	c.Prev()
	return c.Current
}
