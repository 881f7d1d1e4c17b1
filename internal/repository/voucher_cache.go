package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/hdev14/store/internal/domain"
)

var errCacheMiss = errors.New("voucher not in cache")

// VoucherCachedRepository decorates a PurchaseOrderRepository with a redis
// cache on the voucher-by-code read. Vouchers are immutable after
// construction, so a TTL is the only invalidation needed. Cache failures are
// logged and fall through to the inner repository.
type VoucherCachedRepository struct {
	PurchaseOrderRepository

	client  *redis.Client
	baseTTL time.Duration
	sfg     singleflight.Group // prevents cache stampede per voucher code
}

func NewVoucherCachedRepository(inner PurchaseOrderRepository, client *redis.Client) *VoucherCachedRepository {
	return &VoucherCachedRepository{
		PurchaseOrderRepository: inner,
		client:                  client,
		baseTTL:                 15 * time.Minute,
	}
}

func (r *VoucherCachedRepository) GetVoucherByCode(ctx context.Context, code int64) (*domain.Voucher, error) {
	v, err, _ := r.sfg.Do(strconv.FormatInt(code, 10), func() (interface{}, error) {
		voucher, errGet := r.cacheGet(ctx, code)
		if errGet == nil {
			return voucher, nil
		}
		if !errors.Is(errGet, errCacheMiss) {
			log.Printf("voucher cache get error: %v", errGet)
		}

		voucher, errGet = r.PurchaseOrderRepository.GetVoucherByCode(ctx, code)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := r.cacheSet(context.Background(), voucher); errSet != nil {
				log.Printf("voucher cache set error: %v", errSet)
			}
		}()

		return voucher, nil
	})

	if err != nil {
		return nil, err
	}
	return v.(*domain.Voucher), nil
}

func (r *VoucherCachedRepository) cacheGet(ctx context.Context, code int64) (*domain.Voucher, error) {
	data, err := r.client.Get(ctx, voucherKey(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var voucher domain.Voucher
	if e2 := json.Unmarshal(data, &voucher); e2 != nil {
		return nil, fmt.Errorf("unmarshal voucher failed: %w", e2)
	}
	return &voucher, nil
}

func (r *VoucherCachedRepository) cacheSet(ctx context.Context, voucher *domain.Voucher) error {
	data, err := json.Marshal(voucher)
	if err != nil {
		return fmt.Errorf("marshal voucher failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ret := r.client.Set(ctx, voucherKey(voucher.Code), data, r.baseTTL+jitter)
	if ret.Err() != nil {
		return fmt.Errorf("redis set failed: %w", ret.Err())
	}
	return nil
}

func voucherKey(code int64) string {
	return fmt.Sprintf("voucher:%d", code)
}
