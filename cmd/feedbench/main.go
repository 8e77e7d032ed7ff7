package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/d60-Lab/bookmarks/config"
	"github.com/d60-Lab/bookmarks/internal/model"
	"github.com/d60-Lab/bookmarks/internal/repository"
	"github.com/d60-Lab/bookmarks/internal/service"
	"github.com/d60-Lab/bookmarks/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	mustDo(database.AutoMigrate(db))

	ctx := context.Background()

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	actionRepo := repository.NewActionRepository(db)
	imageRepo := repository.NewImageRepository(db)

	actionSvc := service.NewActionService(actionRepo, 0)
	feedSvc := service.NewFeedService(followRepo, actionRepo, imageRepo, userRepo)

	// params
	USERS := 2000   // total users
	FOLLOWS := 50   // follows per viewer
	ACTIONS := 20   // actions per user
	READS := 2000   // feed page reads
	if s := os.Getenv("USERS"); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			USERS = v
		}
	}
	if s := os.Getenv("FOLLOWS"); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			FOLLOWS = v
		}
	}
	if s := os.Getenv("ACTIONS"); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			ACTIONS = v
		}
	}
	if s := os.Getenv("READS"); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			READS = v
		}
	}

	// clean tables for a reproducible run (ok for local bench)
	_ = db.Exec("TRUNCATE TABLE actions, likes, images, follows, users RESTART IDENTITY CASCADE").Error

	fmt.Println("Seeding users...")
	users := make([]model.User, USERS)
	for i := 0; i < USERS; i++ {
		id := fmt.Sprintf("u%06d", i)
		users[i] = model.User{ID: id, Username: id, Email: id + "@example.com", Password: "p", IsActive: true}
	}
	mustDo(db.CreateInBatches(&users, 1000).Error)

	fmt.Println("Seeding follow graph...")
	rnd := rand.New(rand.NewSource(42))
	for i := range users {
		for j := 0; j < FOLLOWS; j++ {
			to := users[rnd.Intn(USERS)].ID
			if to == users[i].ID {
				continue
			}
			_, _ = followRepo.CreateIfAbsent(ctx, users[i].ID, to)
		}
	}

	fmt.Println("Seeding actions...")
	// 窗口抑制会吞掉重复动作，verb 里带序号绕开
	for i := range users {
		for j := 0; j < ACTIONS; j++ {
			_, _ = actionSvc.Record(ctx, users[i].ID, fmt.Sprintf("benchmark action %d", j), service.Target{})
		}
	}

	fmt.Println("Reading feeds...")
	durations := make([]time.Duration, 0, READS)
	for i := 0; i < READS; i++ {
		viewer := users[rnd.Intn(USERS)].ID
		page := 1
		if rnd.Float64() > 0.7 {
			page = 2 + rnd.Intn(10)
		}
		st := time.Now()
		if _, err := feedSvc.Feed(ctx, viewer, page, 10); err != nil {
			panic(err)
		}
		durations = append(durations, time.Since(st))
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}
	fmt.Printf("USERS=%d FOLLOWS=%d ACTIONS=%d READS=%d\n", USERS, FOLLOWS, ACTIONS, READS)
	fmt.Printf("Feed read latency: avg=%v p95=%v p99=%v\n",
		sum/time.Duration(len(durations)), pct(durations, 0.95), pct(durations, 0.99))
}
