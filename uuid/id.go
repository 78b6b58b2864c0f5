package uuid

import (
	"github.com/google/uuid"
	"github.com/lukasz-zimnoch/dexly/dealing"
)

type IDService struct{}

func (ids *IDService) NewID() dealing.ID {
	return uuid.New()
}

func (ids *IDService) NewIDFromString(id string) (dealing.ID, error) {
	return uuid.Parse(id)
}
