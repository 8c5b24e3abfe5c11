package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mcsons/db"
	"mcsons/models"
	"mcsons/rdx"
	"mcsons/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// paidRevenue sums totals over orders whose payment has settled.
func paidRevenue(ctx context.Context) (float64, error) {
	cursor, err := db.OrdersCollection.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"paymentStatus": models.PaymentPaid}},
		{"$group": bson.M{"_id": nil, "revenue": bson.M{"$sum": "$total"}}},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Revenue, nil
}

type monthlyBucket struct {
	Month  int     `bson:"_id" json:"month"`
	Orders int     `bson:"orders" json:"orders"`
	Sales  float64 `bson:"sales" json:"sales"`
}

func monthlyBreakdown(ctx context.Context, year int) ([]monthlyBucket, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	cursor, err := db.OrdersCollection.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"createdAt": bson.M{"$gte": start, "$lt": end}}},
		{"$group": bson.M{
			"_id":    bson.M{"$month": "$createdAt"},
			"orders": bson.M{"$sum": 1},
			"sales":  bson.M{"$sum": "$total"},
		}},
		{"$sort": bson.M{"_id": 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	buckets := []monthlyBucket{}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// GetOrderAnalytics aggregates the admin dashboard numbers: per-status
// counts, paid revenue, the current year's monthly breakdown and
// return/exchange volumes. Cached briefly since the dashboard polls.
func GetOrderAnalytics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	const cacheKey = "orderanalytics"
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	statusCounts := utils.M{}
	for _, status := range AllowedStatuses {
		count, err := db.OrdersCollection.CountDocuments(ctx, bson.M{"orderStatus": status})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		statusCounts[status] = count
	}

	totalOrders, err := db.OrdersCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	revenue, err := paidRevenue(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	monthly, err := monthlyBreakdown(ctx, time.Now().Year())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	allRequests, err := countReturnRequests(ctx, "")
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	pendingRequests, err := countReturnRequests(ctx, models.RequestRequested)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := utils.M{
		"success":         true,
		"totalOrders":     totalOrders,
		"statusCounts":    statusCounts,
		"totalRevenue":    revenue,
		"monthly":         monthly,
		"totalRequests":   allRequests,
		"pendingRequests": pendingRequests,
	}

	if data, err := json.Marshal(payload); err == nil {
		rdx.SetWithExpiry(cacheKey, string(data), 30*time.Second)
	}

	utils.RespondWithJSON(w, http.StatusOK, payload)
}

func countReturnRequests(ctx context.Context, status string) (int64, error) {
	match := bson.M{}
	if status != "" {
		match["returnExchangeRequests.status"] = status
	}

	pipeline := []bson.M{
		{"$unwind": "$returnExchangeRequests"},
	}
	if status != "" {
		pipeline = append(pipeline, bson.M{"$match": match})
	}
	pipeline = append(pipeline, bson.M{"$count": "total"})

	cursor, err := db.OrdersCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
