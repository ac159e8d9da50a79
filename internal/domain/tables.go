package domain

var Tables = []interface{}{
	&ProductTransaction{},
}
