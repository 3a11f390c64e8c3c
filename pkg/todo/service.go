package todo

import (
	"context"
	"fmt"

	"github.com/daybook/daybook/internal/utils"
	"github.com/daybook/daybook/pkg/store"
)

type Service interface {
	List(ctx context.Context) ([]Todo, error)
	ForDay(ctx context.Context, date string) ([]Todo, error)
	Create(ctx context.Context, todo Todo) (Todo, error)
	Update(ctx context.Context, todo Todo) (Todo, error)
	SetCompleted(ctx context.Context, id string, completed bool) (Todo, error)
	Delete(ctx context.Context, id string) error
}

type ServiceImpl struct {
	todos *store.Collection[Todo]
}

func NewService(todos *store.Collection[Todo]) *ServiceImpl {
	return &ServiceImpl{todos: todos}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Todo, error) {
	return s.todos.List(ctx)
}

func (s *ServiceImpl) ForDay(ctx context.Context, date string) ([]Todo, error) {
	if _, err := utils.ParseDay(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTodo, err)
	}
	return s.todos.FindByDate(ctx, date)
}

func (s *ServiceImpl) Create(ctx context.Context, todo Todo) (Todo, error) {
	if err := validate(todo); err != nil {
		return Todo{}, err
	}
	stored, err := s.todos.Add(ctx, todo)
	if err != nil {
		return Todo{}, fmt.Errorf("failed to store todo: %w", err)
	}
	return stored, nil
}

func (s *ServiceImpl) Update(ctx context.Context, todo Todo) (Todo, error) {
	if err := validate(todo); err != nil {
		return Todo{}, err
	}
	updated, err := s.todos.Update(ctx, todo)
	if err != nil {
		return Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}
	return updated, nil
}

// SetCompleted flips the completion flag, replacing the whole record like
// any other update.
func (s *ServiceImpl) SetCompleted(ctx context.Context, id string, completed bool) (Todo, error) {
	todos, err := s.todos.List(ctx)
	if err != nil {
		return Todo{}, err
	}
	for _, todo := range todos {
		if todo.ID == id {
			todo.Completed = completed
			return s.Update(ctx, todo)
		}
	}
	return Todo{}, fmt.Errorf("set completed %q: %w", id, store.ErrNotFound)
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.todos.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func validate(todo Todo) error {
	if todo.Title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidTodo)
	}
	if _, err := utils.ParseDay(todo.Date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTodo, err)
	}
	return nil
}
