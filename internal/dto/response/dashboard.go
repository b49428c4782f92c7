package response

type DashboardResponse struct {
	Dogs           int64 `json:"dogs"`
	Kennels        int64 `json:"kennels"`
	Litters        int64 `json:"litters"`
	Members        int64 `json:"members"`
	PendingMembers int64 `json:"pendingMembers"`
}
