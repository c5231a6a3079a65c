package dig

type In struct{}

type Out struct{}
