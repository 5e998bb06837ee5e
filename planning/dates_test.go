package planning_test

import (
	"time"

	. "github.com/arcenciel/creche-api/planning"
	"github.com/arcenciel/creche-api/store"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Derived values", func() {

	Context("TodayKey", func() {

		It("should map weekdays onto the five keys", func() {
			Expect(TodayKey(time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC))).To(Equal("lundi"))    // monday
			Expect(TodayKey(time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC))).To(Equal("mercredi")) // wednesday
			Expect(TodayKey(time.Date(2024, 1, 12, 10, 0, 0, 0, time.UTC))).To(Equal("vendredi")) // friday
		})

		It("should fall back to the first key on weekends", func() {
			Expect(TodayKey(time.Date(2024, 1, 13, 10, 0, 0, 0, time.UTC))).To(Equal("lundi")) // saturday
			Expect(TodayKey(time.Date(2024, 1, 14, 10, 0, 0, 0, time.UTC))).To(Equal("lundi")) // sunday
		})
	})

	Context("DailyCapacity", func() {

		It("should count the full capacity of anyone working at least one slot", func() {
			staff := []store.Record{
				{
					"name":                "Claire",
					"maxChildrenCapacity": float64(5),
					"schedule": map[string]interface{}{
						"lundi": map[string]interface{}{"morning": true, "afternoon": false},
					},
				},
				{
					"name":                "Paul",
					"maxChildrenCapacity": float64(3),
					"schedule": map[string]interface{}{
						"lundi": map[string]interface{}{"morning": false, "afternoon": false},
					},
				},
			}

			capacities := DailyCapacity(staff)
			Expect(capacities["lundi"]).To(Equal(5))
			Expect(capacities["mardi"]).To(Equal(0))
		})

		It("should sum over every rostered member", func() {
			staff := []store.Record{
				{
					"maxChildrenCapacity": float64(5),
					"schedule": map[string]interface{}{
						"mardi": map[string]interface{}{"morning": true, "afternoon": true},
					},
				},
				{
					"maxChildrenCapacity": float64(4),
					"schedule": map[string]interface{}{
						"mardi": map[string]interface{}{"morning": false, "afternoon": true},
					},
				},
			}

			Expect(DailyCapacity(staff)["mardi"]).To(Equal(9))
		})

		It("should skip records without a schedule", func() {
			staff := []store.Record{
				{"maxChildrenCapacity": float64(5)},
			}

			Expect(DailyCapacity(staff)["lundi"]).To(Equal(0))
		})
	})

	Context("IsChildPresent", func() {

		var child = func(pattern string) store.Record {
			return store.Record{"firstName": "Sam", "attendancePattern": pattern}
		}

		It("should match the day abbreviation as a substring", func() {
			Expect(IsChildPresent(child("Lun-Mer-Ven"), "lundi")).To(BeTrue())
			Expect(IsChildPresent(child("Lun-Mer-Ven"), "mercredi")).To(BeTrue())
			Expect(IsChildPresent(child("Lun-Mer-Ven"), "mardi")).To(BeFalse())
		})

		It("should match full day names too", func() {
			Expect(IsChildPresent(child("Lundi et Jeudi"), "lundi")).To(BeTrue())
			Expect(IsChildPresent(child("Lundi et Jeudi"), "jeudi")).To(BeTrue())
		})

		It("should match case-insensitively", func() {
			Expect(IsChildPresent(child("lun-mar"), "lundi")).To(BeTrue())
			Expect(IsChildPresent(child("LUN"), "lundi")).To(BeTrue())
		})

		It("should be false for an empty pattern or unknown day", func() {
			Expect(IsChildPresent(child(""), "lundi")).To(BeFalse())
			Expect(IsChildPresent(child("Lun"), "samedi")).To(BeFalse())
		})
	})

	Context("IsStaffPresent", func() {

		It("should be true when either slot is worked", func() {
			member := store.Record{
				"schedule": map[string]interface{}{
					"jeudi": map[string]interface{}{"morning": false, "afternoon": true},
				},
			}

			Expect(IsStaffPresent(member, "jeudi")).To(BeTrue())
			Expect(IsStaffPresent(member, "lundi")).To(BeFalse())
		})
	})

	Context("ExpirationStatus", func() {

		var now = time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)

		It("should band past dates as expired", func() {
			Expect(ExpirationStatus("2024-01-08", now)).To(Equal(StatusExpired))
		})

		It("should band the alert window as expiring soon", func() {
			Expect(ExpirationStatus("2024-01-10", now)).To(Equal(StatusExpiringSoon))
			Expect(ExpirationStatus("2024-01-12", now)).To(Equal(StatusExpiringSoon))
			Expect(ExpirationStatus("2024-01-14", now)).To(Equal(StatusExpiringSoon))
		})

		It("should band anything further out as ok", func() {
			Expect(ExpirationStatus("2024-01-15", now)).To(Equal(StatusOk))
			Expect(ExpirationStatus("2024-01-20", now)).To(Equal(StatusOk))
		})

		It("should band an unparseable date as ok", func() {
			Expect(ExpirationStatus("pas-une-date", now)).To(Equal(StatusOk))
		})
	})

	Context("Age", func() {

		var now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

		It("should return whole years", func() {
			Expect(Age("2020-01-01", now)).To(Equal(4))
			Expect(Age("2020-07-01", now)).To(Equal(3))
		})

		It("should return zero for an unparseable date", func() {
			Expect(Age("inconnue", now)).To(Equal(0))
		})
	})
})
