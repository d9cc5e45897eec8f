package service

import (
	"fmt"
	"time"

	"github.com/fsdevblog/cenjin-cards/pkg/uow"
)

type AppServices struct {
	UserService  *UserService
	CardService  *CardService
	StatsService *StatsService
}

type FactoryArgs struct {
	UOW          uow.UOW
	Hasher       PasswordHasher
	TokenManager TokenManager
	Location     *time.Location
}

func Factory(args FactoryArgs) (*AppServices, error) {
	userService, userServiceErr := NewUserService(args.UOW, args.Hasher, args.TokenManager)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	cardService, cardServiceErr := NewCardService(args.UOW, args.Location)
	if cardServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", cardServiceErr.Error())
	}

	statsService, statsServiceErr := NewStatsService(args.UOW, args.Location)
	if statsServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", statsServiceErr.Error())
	}

	return &AppServices{
		UserService:  userService,
		CardService:  cardService,
		StatsService: statsService,
	}, nil
}
