package mediator_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/AntonStoeckl/command-mediator-go/mediator"
	"github.com/AntonStoeckl/command-mediator-go/mediator/validation"
)

type renameWidget struct {
	Name    string
	NewName string
}

var renameWidgetRules = func() *validation.Validator[renameWidget] {
	v := validation.For[renameWidget]()
	v.Rule("Name", func(c renameWidget) any { return c.Name }).Required()
	v.Rule("NewName", func(c renameWidget) any { return c.NewName }).Required().MaxLength(20)
	return v
}()

func (c renameWidget) CommandType() string         { return "RenameWidget" }
func (c renameWidget) Validate() validation.Result { return renameWidgetRules.Validate(c) }

type otherCommand struct{}

func (otherCommand) CommandType() string         { return "OtherCommand" }
func (otherCommand) Validate() validation.Result { return validation.Valid() }

type widget struct {
	Name string
}

type widgetRenamed struct {
	mediator.EventBase
	NewName string `json:"newName"`
}

func (widgetRenamed) MessageType() string { return "WidgetRenamedEvent" }

func newWidgetRenamed(name, newName string) widgetRenamed {
	return widgetRenamed{
		EventBase: mediator.BuildEventBase(name, time.Now()),
		NewName:   newName,
	}
}

type unitOfWorkMock struct {
	mock.Mock
}

func (m *unitOfWorkMock) Commit(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type recordingSubscriber struct {
	name     string
	received *[]string
	err      error
}

func (s recordingSubscriber) Receive(_ context.Context, message mediator.Message) error {
	*s.received = append(*s.received, s.name+":"+message.MessageType())
	return s.err
}
