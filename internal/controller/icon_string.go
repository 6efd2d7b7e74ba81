package controller

func (v IconVariant) String() string {
	switch v {
	case IconOwn:
		return "own"
	case IconApproved:
		return "approved"
	case IconOwnApproved:
		return "own-approved"
	case IconError:
		return "error"
	default:
		return "normal"
	}
}
