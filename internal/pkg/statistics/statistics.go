package statistics

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/ManuelReschke/PayPlan/app/models"
	"github.com/ManuelReschke/PayPlan/internal/pkg/cache"
)

const (
	CacheKeyAccounts          = "statistics:accounts:total"
	CacheKeyPlans             = "statistics:plans:total"
	CacheKeyPayers            = "statistics:payers:total"
	CacheKeyTransactionsDaily = "statistics:transactions:daily:%s" // Format with date YYYY-MM-DD
	CacheExpiration           = 30 * time.Minute
)

// StatisticsData holds the installation-wide counters shown by payplanctl.
type StatisticsData struct {
	TotalAccounts     int64
	TotalPlans        int64
	TotalPayers       int64
	TodayTransactions int64
}

// GetStatistics returns the counters from the cache, or counts them and
// refreshes the cache when any value is missing.
func GetStatistics(db *gorm.DB, now time.Time) (StatisticsData, error) {
	if data, ok := cachedStatistics(now); ok {
		return data, nil
	}
	return UpdateStatisticsCache(db, now)
}

func cachedStatistics(now time.Time) (StatisticsData, bool) {
	keys := []string{CacheKeyAccounts, CacheKeyPlans, CacheKeyPayers, dailyKey(now)}
	values := make([]int64, len(keys))
	for i, key := range keys {
		raw, err := cache.Get(key)
		if err != nil {
			return StatisticsData{}, false
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return StatisticsData{}, false
		}
		values[i] = v
	}
	return StatisticsData{
		TotalAccounts:     values[0],
		TotalPlans:        values[1],
		TotalPayers:       values[2],
		TodayTransactions: values[3],
	}, true
}

// UpdateStatisticsCache counts the records and stores the result in the
// cache. With the cache disabled the counts are still returned.
func UpdateStatisticsCache(db *gorm.DB, now time.Time) (StatisticsData, error) {
	var data StatisticsData
	if err := db.Model(&models.Account{}).Count(&data.TotalAccounts).Error; err != nil {
		return data, fmt.Errorf("count accounts: %w", err)
	}
	if err := db.Model(&models.PlanOption{}).Count(&data.TotalPlans).Error; err != nil {
		return data, fmt.Errorf("count plans: %w", err)
	}
	if err := db.Model(&models.Payer{}).Count(&data.TotalPayers).Error; err != nil {
		return data, fmt.Errorf("count payers: %w", err)
	}

	utc := now.UTC()
	dayStart := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)
	if err := db.Model(&models.Transaction{}).
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Count(&data.TodayTransactions).Error; err != nil {
		return data, fmt.Errorf("count transactions: %w", err)
	}

	values := map[string]int64{
		CacheKeyAccounts: data.TotalAccounts,
		CacheKeyPlans:    data.TotalPlans,
		CacheKeyPayers:   data.TotalPayers,
		dailyKey(now):    data.TodayTransactions,
	}
	for key, v := range values {
		if err := cache.Set(key, strconv.FormatInt(v, 10), CacheExpiration); err != nil {
			if !cache.IsMiss(err) {
				log.Printf("Error caching %s: %v", key, err)
			}
			break
		}
	}

	return data, nil
}

func dailyKey(now time.Time) string {
	return fmt.Sprintf(CacheKeyTransactionsDaily, now.UTC().Format("2006-01-02"))
}
