// Package seed loads orders from a JSON seed file.
//
// The file is an array of entries:
//
//	[{"order_id": "<uuid>", "store_id": "<store>", "order": {...details...}}]
//
// Loading is idempotent: entries whose order id already exists are skipped.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// Entry is one order of a seed file.
type Entry struct {
	OrderID string                     `json:"order_id" validate:"required,uuid"`
	StoreID string                     `json:"store_id" validate:"required"`
	Order   map[string]json.RawMessage `json:"order"    validate:"required"`
}

// Result summarizes a load.
type Result struct {
	Created int
	Skipped int
}

// OrderCreator is satisfied by commands.CreateOrderCommandHandler.
type OrderCreator interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

type Loader struct {
	creator  OrderCreator
	validate *validator.Validate
	logger   *logger.Logger
}

func NewLoader(creator OrderCreator, log *logger.Logger) *Loader {
	return &Loader{
		creator:  creator,
		validate: newValidator(),
		logger:   log,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// LoadFile reads and loads the seed file at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	return l.Load(ctx, f)
}

// Load validates every entry before creating any order, so a bad file
// writes nothing.
func (l *Loader) Load(ctx context.Context, r io.Reader) (Result, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return Result{}, errs.NewValueIsInvalidErrorWithCause("seed file", err)
	}

	cmds := make([]commands.CreateOrderCommand, 0, len(entries))
	var invalid error
	for i, entry := range entries {
		cmd, err := l.toCommand(entry)
		if err != nil {
			invalid = errors.Join(invalid, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		cmds = append(cmds, cmd)
	}
	if invalid != nil {
		return Result{}, invalid
	}

	var result Result
	for _, cmd := range cmds {
		entryCtx := l.logger.WithOrderID(ctx, cmd.OrderID().String())
		_, err := l.creator.Handle(entryCtx, cmd)
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, errs.ErrObjectAlreadyExists):
			l.logger.Debug(entryCtx, "seed order already exists")
			result.Skipped++
		default:
			return result, fmt.Errorf("seed order %s: %w", cmd.OrderID(), err)
		}
	}

	l.logger.InfoFields(ctx, "seed loaded", map[string]any{
		"created": result.Created,
		"skipped": result.Skipped,
	})
	return result, nil
}

func (l *Loader) toCommand(entry Entry) (commands.CreateOrderCommand, error) {
	if err := l.validate.Struct(entry); err != nil {
		return commands.CreateOrderCommand{}, formatValidationErrors(err)
	}

	id, err := kernel.UUIDFromString(entry.OrderID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(id, entry.StoreID, entry.Order)
}

func formatValidationErrors(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("seed entry", err)
	}

	var joined error
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			joined = errors.Join(joined, errs.NewValueIsRequiredError(fe.Field()))
			continue
		}
		joined = errors.Join(joined, errs.NewValueIsInvalidError(fe.Field()))
	}
	return joined
}
