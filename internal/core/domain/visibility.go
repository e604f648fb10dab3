package domain

// CanSeeFullDetails decides whether the viewer receives the full purchase request or
// the reduced projection. It is the single source of truth for request visibility and
// is applied on the read path (both list and detail) so withheld fields are never
// serialized, not merely hidden by a client.
func CanSeeFullDetails(req *PurchaseRequest, viewer Actor) bool {
	if viewer.Role.IsElevated() {
		return true
	}
	if req.RequestorID == viewer.EmployeeID {
		return true
	}
	if req.RequestorDepartment == viewer.Department {
		return true
	}
	for _, s := range VisibleStagesForDepartment(viewer.Department) {
		if req.Status == s {
			return true
		}
	}
	return false
}

// VisibleStagesForDepartment returns the review stages a department observes
// regardless of who filed the request. It backs both the predicate above and the
// scoping of list queries, so the two can never disagree.
func VisibleStagesForDepartment(department string) []RequestStatus {
	switch department {
	case DeptFinance:
		return []RequestStatus{StatusSubmitted, StatusFinanceReview, StatusAuditReview}
	case DeptProcurement:
		return []RequestStatus{StatusProcurementReview}
	case DeptLegal:
		return []RequestStatus{StatusLegalReview}
	}
	return nil
}
