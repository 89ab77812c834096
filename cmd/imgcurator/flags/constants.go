package flags

const Verbose = `verbose`
const Quiet = `quiet`
const Plain = `plain`
const Images = `images`
const Dimensions = `dimensions`
const Yes = `yes`
const Report = `report`
