package repository

import (
	"context"
	"errors"
	"fmt"

	"tour-booking/internal/data/entity"

	"go.uber.org/zap"
)

var ErrTourNotFound = errors.New("tour not found")

type TourRepository interface {
	FindAll(ctx context.Context) ([]*entity.Tour, error)
	FindByID(ctx context.Context, id int) (*entity.Tour, error)
}

// tourRepository serves a catalog compiled into the binary. It never
// mutates after construction, so it needs no locking.
type tourRepository struct {
	tours []*entity.Tour
	byID  map[int]*entity.Tour
	log   *zap.Logger
}

func NewTourRepository(tours []*entity.Tour, log *zap.Logger) TourRepository {
	r := &tourRepository{
		tours: make([]*entity.Tour, 0, len(tours)),
		byID:  make(map[int]*entity.Tour, len(tours)),
		log:   log.With(zap.String("repository", "tour")),
	}
	for _, t := range tours {
		c := t.Clone()
		r.tours = append(r.tours, c)
		r.byID[c.ID] = c
	}
	return r
}

func (r *tourRepository) FindAll(ctx context.Context) ([]*entity.Tour, error) {
	out := make([]*entity.Tour, len(r.tours))
	for i, t := range r.tours {
		out[i] = t.Clone()
	}
	return out, nil
}

func (r *tourRepository) FindByID(ctx context.Context, id int) (*entity.Tour, error) {
	t, ok := r.byID[id]
	if !ok {
		r.log.Debug("Tour lookup missed", zap.Int("tour_id", id))
		return nil, fmt.Errorf("%w: id %d", ErrTourNotFound, id)
	}
	return t.Clone(), nil
}

const imageBase = "https://cdn.poehali.dev/projects/afabb9ad-8582-4f3d-928d-f0bdef74acb6/files/"

// DefaultCatalog is the fixed list of tours shown on the page, in display order.
func DefaultCatalog() []*entity.Tour {
	return []*entity.Tour{
		{
			ID:          1,
			Title:       "Москва - Золотое кольцо",
			Description: "Путешествие по древним городам России с посещением Владимира, Суздаля и Костромы",
			Price:       45000,
			Duration:    "5 дней / 4 ночи",
			ImageURL:    imageBase + "34be9042-e679-47cf-a631-77e8564ef98e.jpg",
			Highlights:  []string{"Экскурсия по Кремлю", "Посещение Суздаля", "Обед в ресторане"},
		},
		{
			ID:          2,
			Title:       "Байкал - Жемчужина Сибири",
			Description: "Уникальное путешествие к самому глубокому озеру в мире",
			Price:       75000,
			Duration:    "7 дней / 6 ночей",
			ImageURL:    imageBase + "e794d198-4370-413d-bea1-e6ca74f36684.jpg",
			Highlights:  []string{"Круиз по Байкалу", "Поездка на остров Ольхон", "Визит в Иркутск"},
		},
		{
			ID:          3,
			Title:       "Золотое кольцо - Классика",
			Description: "Классический маршрут по историческим городам: Владимир, Суздаль, Ярославль",
			Price:       38000,
			Duration:    "4 дня / 3 ночи",
			ImageURL:    imageBase + "9f0705c5-b716-4447-af14-e0465f1df745.jpg",
			Highlights:  []string{"Белокаменные соборы", "Музеи деревянного зодчества", "Дегустация медовухи"},
		},
	}
}
