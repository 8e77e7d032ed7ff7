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

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

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

// parseRedisMemory extracts used_memory from Redis INFO.
func parseRedisMemory(info string) int64 {
	lines := []rune(info)
	var result int64
	for i := 0; i < len(lines); {
		if i+12 < len(lines) && string(lines[i:i+12]) == "used_memory:" {
			i += 12
			var num int64
			for i < len(lines) && lines[i] >= '0' && lines[i] <= '9' {
				num = num*10 + int64(lines[i]-'0')
				i++
			}
			result = num
			break
		}
		i++
	}
	return result
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func main() {
	ctx := context.Background()
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	mustDo(database.AutoMigrate(db))

	IMAGES := 5000
	VIEWS := 50000
	READS := 5000
	if s := os.Getenv("IMAGES"); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			IMAGES = v
		}
	}
	if s := os.Getenv("VIEWS"); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			VIEWS = v
		}
	}
	if s := os.Getenv("READS"); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			READS = v
		}
	}

	_ = db.Exec("TRUNCATE TABLE actions, likes, images, follows, users RESTART IDENTITY CASCADE").Error

	owner := model.User{ID: "owner0", Username: "owner0", Email: "owner0@example.com", Password: "p", IsActive: true}
	mustDo(db.Create(&owner).Error)

	fmt.Println("Seeding images...")
	images := make([]model.Image, IMAGES)
	for i := 0; i < IMAGES; i++ {
		images[i] = model.Image{
			ID:     uuid.NewString(),
			UserID: owner.ID,
			Title:  fmt.Sprintf("image %d", i),
			Slug:   fmt.Sprintf("image-%d", i),
			URL:    fmt.Sprintf("https://example.com/%d.jpg", i),
		}
	}
	mustDo(db.CreateInBatches(&images, 1000).Error)

	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		panic(fmt.Sprintf("failed to connect to redis at %s: %v", cfg.Redis.Addr, err))
	}
	client.FlushAll(ctx)

	imageRepo := repository.NewImageRepository(db)
	ranking := service.NewRankingService(client, imageRepo, cfg.Redis.Timeout)

	// zipf-ish popularity: low ids get most views
	fmt.Println("Recording views...")
	rnd := rand.New(rand.NewSource(42))
	writeDur := make([]time.Duration, 0, VIEWS)
	for i := 0; i < VIEWS; i++ {
		idx := int(math.Floor(math.Pow(rnd.Float64(), 3) * float64(IMAGES)))
		if idx >= IMAGES {
			idx = IMAGES - 1
		}
		st := time.Now()
		ranking.RecordView(ctx, images[idx].ID)
		writeDur = append(writeDur, time.Since(st))
	}

	fmt.Println("Reading rankings...")
	readDur := make([]time.Duration, 0, READS)
	for i := 0; i < READS; i++ {
		st := time.Now()
		if _, err := ranking.MostViewedImages(ctx, 10); err != nil {
			panic(err)
		}
		readDur = append(readDur, time.Since(st))
	}

	var memBytes int64
	if info, err := client.Info(ctx, "memory").Result(); err == nil {
		memBytes = parseRedisMemory(info)
	}

	var wSum, rSum time.Duration
	for _, d := range writeDur {
		wSum += d
	}
	for _, d := range readDur {
		rSum += d
	}
	fmt.Printf("IMAGES=%d VIEWS=%d READS=%d\n", IMAGES, VIEWS, READS)
	fmt.Printf("record_view:        avg=%v p95=%v p99=%v\n", wSum/time.Duration(len(writeDur)), pct(writeDur, 0.95), pct(writeDur, 0.99))
	fmt.Printf("most_viewed(top10): avg=%v p95=%v p99=%v\n", rSum/time.Duration(len(readDur)), pct(readDur, 0.95), pct(readDur, 0.99))
	fmt.Printf("redis mem=%s\n", formatBytes(memBytes))
}
