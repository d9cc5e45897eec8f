// Command fakedata writes a workbook of random member cards in the import layout.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/logger"
	"github.com/fsdevblog/cenjin-cards/internal/sheet"
	"github.com/shopspring/decimal"
)

var statuses = []domain.CardStatusType{
	domain.CardStatusShipped,
	domain.CardStatusUnshipped,
	domain.CardStatusUsed,
	domain.CardStatusExpired,
}

var faceValues = []int64{50, 100, 200, 500, 1000}

func main() {
	count := flag.Int("n", 20, "Number of cards")
	out := flag.String("o", "data.xlsx", "Output file")
	zone := flag.String("z", "Asia/Shanghai", "Time zone of order times")
	flag.Parse()

	l := logger.New(os.Stderr)
	loc, err := time.LoadLocation(*zone)
	if err != nil {
		l.WithError(err).Fatal("load time zone")
	}

	f, err := os.Create(*out)
	if err != nil {
		l.WithError(err).Fatal("create output")
	}
	defer f.Close()

	if err = sheet.Write(f, fakeCards(gofakeit.New(0), *count, time.Now().In(loc)), loc); err != nil {
		l.WithError(err).Fatal("write workbook")
	}
	l.WithField("file", *out).Infof("wrote %d cards", *count)
}

func fakeCards(faker *gofakeit.Faker, n int, now time.Time) []domain.MemberCard {
	batch := fmt.Sprintf("B%s", now.Format("20060102"))
	cards := make([]domain.MemberCard, n)
	for i := range cards {
		face := decimal.NewFromInt(faceValues[faker.IntN(len(faceValues))])
		// a discount between 1% and 10% off face value, cost a bit below the selling price.
		price := face.Mul(decimal.NewFromInt(int64(90 + faker.IntN(10)))).Div(decimal.NewFromInt(100)).Round(2)
		cost := price.Mul(decimal.NewFromFloat(0.95)).Round(2)

		cards[i] = domain.MemberCard{
			BatchNumber:  batch,
			Merchant:     faker.Company(),
			Supplier:     faker.Company(),
			ProductName:  faker.ProductName(),
			FaceValue:    face,
			Price:        price,
			ImportPrice:  cost,
			CardNumber:   faker.Numerify("6222##########"),
			CardPassword: faker.Password(true, true, true, false, false, 12),
			OrderTime:    now.Add(-time.Duration(faker.IntN(90*24)) * time.Hour).Truncate(time.Second),
			Status:       statuses[faker.IntN(len(statuses))],
		}
	}
	return cards
}
